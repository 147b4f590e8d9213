package statemachine

import (
	"sort"

	"github.com/inventhouse/statemachine/internal/compiler"
	"github.com/inventhouse/statemachine/pkg/registry"
)

// Source gathers rule text from its two provenances. Named and Add are
// authoritative rule strings (command-line-equivalent); Files are raw
// rule-file texts, the bulk provenance. Named-rule collisions between the
// two are always won by the authoritative side, regardless of parse order.
type Source struct {
	Named []string
	Add   []string
	Files []string
}

// Report summarizes a compilation for diagnostics.
type Report struct {
	// Aliases is the final named-rule dictionary's names, sorted.
	Aliases []string

	// Unresolved lists likely dangling alias references: test-position
	// tokens that name neither an alias nor a registered test mnemonic.
	Unresolved []string

	// Rules is the number of rules added to the machine.
	Rules int
}

// Compile assembles a machine from rule text. Rule blocks are extracted
// from each file, aliases are resolved with the three-pass override
// protocol, and every add-rule is built against reg (registry.Builtin when
// nil). Authoritative add-rules are added before file add-rules, so they
// win first-match precedence. Any syntax or mnemonic error aborts the
// compile; no partial machine is returned.
func Compile(start string, src Source, reg *registry.Registry, opts ...Option) (*Machine, *Report, error) {
	if reg == nil {
		reg = registry.Builtin()
	}

	compiled, err := compiler.CompileSource(src.Named, src.Add, src.Files, reg)
	if err != nil {
		return nil, nil, err
	}

	m := New(start, opts...)
	for _, b := range compiled.Bound {
		m.AddRule(b.State, b.Rule)
	}

	report := &Report{
		Unresolved: compiler.Unresolved(compiled.Dict, reg),
		Rules:      len(compiled.Bound),
	}
	for name := range compiled.Dict {
		report.Aliases = append(report.Aliases, name)
	}
	sort.Strings(report.Aliases)
	return m, report, nil
}
