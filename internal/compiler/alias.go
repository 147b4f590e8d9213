package compiler

import (
	"sort"

	"github.com/inventhouse/statemachine/pkg/domain"
	"github.com/inventhouse/statemachine/pkg/registry"
)

// Dict is an alias dictionary: named rule -> its body fields (everything
// after the name). Dicts are treated as immutable snapshots; each
// resolution pass takes one and returns a new one.
type Dict map[string][]domain.Field

func (d Dict) clone() Dict {
	out := make(Dict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// ParseNamed splits a named-rule string into its name and body fields.
func ParseNamed(line string) (string, []domain.Field, error) {
	fields, err := SplitFields(line)
	if err != nil {
		return "", nil, err
	}
	if fields[0].IsAbsent() {
		return "", nil, &domain.SyntaxError{Line: line, Reason: "named rule has no name"}
	}
	return fields[0].Value, fields[1:], nil
}

// mark classifies parsed fields against the dictionary: a literal that
// names an entry becomes an alias reference, everything else passes through
// untouched. References only exist where the dictionary vouches for them,
// so an unknown name stays a plain literal.
func mark(fields []domain.Field, dict Dict) []domain.Field {
	out := make([]domain.Field, len(fields))
	for i, f := range fields {
		out[i] = f
		if f.Kind == domain.FieldLiteral {
			if _, ok := dict[f.Value]; ok {
				out[i] = domain.AliasRef(f.Value)
			}
		}
	}
	return out
}

// expand marks fields against the dictionary and substitutes each alias
// reference with its entry's body, flattened in place. Exactly one level:
// inserted fields are not re-marked or re-expanded within the same
// resolution.
func expand(fields []domain.Field, dict Dict) []domain.Field {
	out := make([]domain.Field, 0, len(fields))
	for _, f := range mark(fields, dict) {
		if f.Kind == domain.FieldAliasRef {
			out = append(out, dict[f.Value]...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// Pass parses one provenance's named-rule strings against a base snapshot
// and returns the grown dictionary. Bodies resolve against everything
// placed so far (base plus earlier lines of this pass), so definition order
// matters within a source. Without override, a name that already exists is
// silently discarded in favor of the existing entry; with override it is
// re-resolved and overwritten.
func Pass(lines []string, base Dict, override bool) (Dict, error) {
	dict := base.clone()
	for _, line := range lines {
		name, body, err := ParseNamed(line)
		if err != nil {
			return nil, err
		}
		if _, exists := dict[name]; exists && !override {
			continue
		}
		dict[name] = expand(body, dict)
	}
	return dict, nil
}

// Resolve runs the three-pass override protocol over the two provenances:
//
//  1. authoritative, no override -- references resolve only against
//     earlier authoritative entries; unknown names stay literal.
//  2. bulk, no override -- resolves against pass 1 plus earlier bulk
//     entries; collisions with authoritative names lose silently.
//  3. authoritative again, override -- re-resolved against the full
//     dictionary, so authoritative definitions may use names that only
//     became available during bulk parsing and always win the final
//     dictionary regardless of definition order.
func Resolve(authoritative, bulk []string) (Dict, error) {
	d, err := Pass(authoritative, Dict{}, false)
	if err != nil {
		return nil, err
	}
	if d, err = Pass(bulk, d, false); err != nil {
		return nil, err
	}
	return Pass(authoritative, d, true)
}

// Unresolved enumerates likely dangling alias references for diagnostics:
// test-position tokens in the final dictionary's bodies that name neither a
// dictionary entry nor a registered test mnemonic. The policy is non-fatal;
// such tokens stay literal and surface as unknown mnemonics only if a rule
// actually uses them.
func Unresolved(dict Dict, reg *registry.Registry) []string {
	seen := make(map[string]struct{})
	for _, body := range dict {
		if len(body) == 0 || body[0].Kind != domain.FieldLiteral {
			continue
		}
		tok := body[0].Value
		if _, ok := dict[tok]; ok {
			continue
		}
		if _, ok := reg.Test(tok); ok {
			continue
		}
		seen[tok] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for tok := range seen {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
