package validator

import (
	"fmt"
	"sort"

	"github.com/inventhouse/statemachine/internal/compiler"
	"github.com/inventhouse/statemachine/pkg/registry"
)

// Report lists structural findings about a compiled rule set. None of them
// are fatal -- a machine with findings still runs -- but each one usually
// points at a rule-coverage defect waiting to surface as unrecognized
// input.
type Report struct {
	// Undefined lists destination states that have no explicit rules.
	// Wildcard rules may still cover them at runtime.
	Undefined []string

	// Unreachable lists states with rules that no chain of transitions
	// from the start state can reach.
	Unreachable []string

	// Unresolved lists likely dangling alias references.
	Unresolved []string
}

// OK reports whether the check produced no findings.
func (r *Report) OK() bool {
	return len(r.Undefined) == 0 && len(r.Unreachable) == 0 && len(r.Unresolved) == 0
}

// Lines renders the findings for terminal output.
func (r *Report) Lines() []string {
	var out []string
	for _, s := range r.Undefined {
		out = append(out, fmt.Sprintf("undefined state: '%s' is a destination but has no rules", s))
	}
	for _, s := range r.Unreachable {
		out = append(out, fmt.Sprintf("unreachable state: no transition path from start reaches '%s'", s))
	}
	for _, s := range r.Unresolved {
		out = append(out, fmt.Sprintf("unresolved alias reference: %q", s))
	}
	return out
}

// Check analyzes a compiled rule set starting from the named start state.
func Check(start string, compiled *compiler.Compiled, reg *registry.Registry) *Report {
	defined := make(map[string]bool)
	var wildcardDests []string
	edges := make(map[string][]string) // state -> destination states

	for _, b := range compiled.Bound {
		dest := ""
		if !b.Rule.Dest.IsSelf() {
			dest = b.Rule.Dest.State().Name()
		}
		if b.State.IsWildcard() {
			if dest != "" {
				wildcardDests = append(wildcardDests, dest)
			}
			continue
		}
		name := b.State.Name()
		defined[name] = true
		if dest != "" {
			edges[name] = append(edges[name], dest)
		}
	}

	// Reachability: wildcard rules contribute their destinations from
	// every state, so fold them into each state's edge list.
	visited := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if visited[s] {
			continue
		}
		visited[s] = true
		for _, d := range append(edges[s], wildcardDests...) {
			if !visited[d] {
				queue = append(queue, d)
			}
		}
	}

	report := &Report{Unresolved: compiler.Unresolved(compiled.Dict, reg)}

	seenUndef := make(map[string]bool)
	for _, dests := range edges {
		for _, d := range dests {
			if !defined[d] && !seenUndef[d] {
				seenUndef[d] = true
				report.Undefined = append(report.Undefined, d)
			}
		}
	}
	for _, d := range wildcardDests {
		if !defined[d] && !seenUndef[d] {
			seenUndef[d] = true
			report.Undefined = append(report.Undefined, d)
		}
	}

	for s := range defined {
		if !visited[s] {
			report.Unreachable = append(report.Unreachable, s)
		}
	}

	sort.Strings(report.Undefined)
	sort.Strings(report.Unreachable)
	return report
}
