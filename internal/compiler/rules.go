package compiler

import (
	"fmt"

	"github.com/inventhouse/statemachine/pkg/domain"
	"github.com/inventhouse/statemachine/pkg/registry"
)

// Field positions within a padded add-rule.
const (
	fState = iota
	fTest
	fTestArg
	fDst
	fAction
	fActionArg
	fTag
)

// WildcardToken spells the wildcard state in the rule language's state
// field. An absent dst field means self-transition.
const WildcardToken = "*"

// Bound couples a built rule with its source state and the line it came
// from.
type Bound struct {
	State domain.State
	Rule  domain.Rule
	Line  string
}

// BuildRule parses one add-rule string against the final alias dictionary
// and the mnemonic registries. The compact form `d state d alias d tag`
// expands the alias into the whole rule body and auto-tags it with the
// alias's name unless an explicit tag is given. In the long form, any field
// after the state naming a dictionary entry is replaced by that entry's
// body, flattened in place; the state field itself is never expanded.
func BuildRule(line string, dict Dict, reg *registry.Registry) (Bound, error) {
	fields, err := SplitFields(line)
	if err != nil {
		return Bound{}, err
	}
	if len(fields) == 0 || fields[fState].IsAbsent() {
		return Bound{}, &domain.SyntaxError{Line: line, Reason: "add rule has no state"}
	}

	autoTag := ""
	tagOverride := ""
	if n := len(fields); n >= 2 && n <= 3 {
		if ref := mark(fields[1:2], dict)[0]; ref.Kind == domain.FieldAliasRef {
			// Compact form: the alias is the whole rule body.
			autoTag = ref.Value
			if n == 3 && !fields[2].IsAbsent() {
				tagOverride = fields[2].Value
			}
			fields = append([]domain.Field{fields[fState]}, dict[ref.Value]...)
		}
	}
	if autoTag == "" {
		fields = append(fields[:1], expand(fields[1:], dict)...)
	}
	if len(fields) > MaxFields {
		return Bound{}, &domain.SyntaxError{Line: line, Reason: "too many fields after alias expansion"}
	}
	fields = pad(fields)

	if tagOverride != "" {
		fields[fTag] = domain.Literal(tagOverride)
	} else if autoTag != "" && fields[fTag].IsAbsent() {
		fields[fTag] = domain.Literal(autoTag)
	}

	state := domain.Named(fields[fState].Value)
	if fields[fState].Value == WildcardToken {
		state = domain.Wildcard
	}

	rule := domain.Rule{Dest: domain.Self()}
	if !fields[fDst].IsAbsent() {
		rule.Dest = domain.ToName(fields[fDst].Value)
	}
	if !fields[fTag].IsAbsent() {
		rule.Tag = fields[fTag].Value
	}

	if !fields[fTest].IsAbsent() {
		name := fields[fTest].Value
		builder, ok := reg.Test(name)
		if !ok {
			return Bound{}, &domain.UnknownMnemonicError{Kind: "test", Token: name, Position: fTest + 1, Line: line}
		}
		arg := fieldValue(fields[fTestArg])
		test, err := builder(arg)
		if err != nil {
			return Bound{}, fmt.Errorf("building test %q: %w", name, err)
		}
		rule.Test = test
		rule.TestRepr = mnemonicRepr(name, arg)
	}

	if !fields[fAction].IsAbsent() {
		name := fields[fAction].Value
		builder, ok := reg.Action(name)
		if !ok {
			return Bound{}, &domain.UnknownMnemonicError{Kind: "action", Token: name, Position: fAction + 1, Line: line}
		}
		arg := fieldValue(fields[fActionArg])
		action, err := builder(arg)
		if err != nil {
			return Bound{}, fmt.Errorf("building action %q: %w", name, err)
		}
		rule.Action = action
		rule.ActionRepr = mnemonicRepr(name, arg)
	}

	return Bound{State: state, Rule: rule, Line: line}, nil
}

// BuildRules builds every add-rule line in order; the order is the rules'
// match-precedence order. Any error aborts the whole build, so no partial
// machine can be constructed.
func BuildRules(lines []string, dict Dict, reg *registry.Registry) ([]Bound, error) {
	out := make([]Bound, 0, len(lines))
	for _, line := range lines {
		b, err := BuildRule(line, dict, reg)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func fieldValue(f domain.Field) string {
	if f.IsAbsent() {
		return ""
	}
	return f.Value
}

func mnemonicRepr(name, arg string) string {
	if arg == "" {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, arg)
}
