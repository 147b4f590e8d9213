package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/inventhouse/statemachine/internal/runtime"
	"github.com/inventhouse/statemachine/pkg/domain"
)

// Block markers, matched case-insensitively with surrounding whitespace
// and optional trailing punctuation tolerated.
var (
	namedMarker = regexp.MustCompile(`(?i)^\s*named\s+rules\s*:?\s*$`)
	addMarker   = regexp.MustCompile(`(?i)^\s*add\s+rules\s*:?\s*$`)
	endMarker   = regexp.MustCompile(`(?i)^\s*end\s+rules\s*:?\s*$`)
)

// Blocks holds the significant lines of a rules file: the contents of its
// Named Rules and Add Rules sections, in file order.
type Blocks struct {
	Named []string
	Add   []string
}

func markerTest(re *regexp.Regexp) domain.Predicate {
	return func(in string, _ domain.Context) (any, bool) {
		ok := re.MatchString(in)
		return ok, ok
	}
}

func collect(dst *[]string) domain.Action {
	return func(in string, _ domain.Context) (any, bool) {
		*dst = append(*dst, in)
		return nil, false
	}
}

// ExtractBlocks scans free-form file text and isolates the lines inside
// Named Rules / Add Rules sections. A section ends at End Rules or
// implicitly at the next block marker. Comments are stripped from every
// line before classification, and blank or pure-comment lines are dropped
// entirely.
//
// The scanner is itself a machine run on the dispatch engine: three states
// (prose, named, add) with explicit marker rules and a wildcard catch-all
// that drops prose.
func ExtractBlocks(text string) (*Blocks, error) {
	b := &Blocks{}

	prose := domain.Named("prose")
	named := domain.Named("named")
	add := domain.Named("add")

	eng := runtime.New(prose, runtime.WithTraceDepth(0))
	for _, st := range []domain.State{prose, named, add} {
		eng.AddRule(st, domain.Rule{Test: markerTest(namedMarker), Dest: domain.To(named), Tag: "named-rules", TestRepr: "marker(named)"})
		eng.AddRule(st, domain.Rule{Test: markerTest(addMarker), Dest: domain.To(add), Tag: "add-rules", TestRepr: "marker(add)"})
		eng.AddRule(st, domain.Rule{Test: markerTest(endMarker), Dest: domain.To(prose), Tag: "end-rules", TestRepr: "marker(end)"})
	}
	eng.AddRule(named, domain.Rule{Dest: domain.Self(), Action: collect(&b.Named), Tag: "named-line"})
	eng.AddRule(add, domain.Rule{Dest: domain.Self(), Action: collect(&b.Add), Tag: "add-line"})
	eng.AddRule(domain.Wildcard, domain.Rule{Dest: domain.Self(), Tag: "drop-prose"})

	for i, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(StripComment(line))
		if stripped == "" {
			continue
		}
		if _, _, err := eng.Input(stripped); err != nil {
			// The wildcard catch-all makes this unreachable short of an
			// engine defect; surface it rather than swallow it.
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return b, nil
}

// Prose returns the lines outside any rule block, markers excluded and
// comments intact. It is the complement of ExtractBlocks: marker
// classification strips comments first, exactly as extraction does, so a
// marker carrying a trailing comment still closes off its block's lines.
func Prose(text string) []string {
	var out []string
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		stripped := StripComment(line)
		switch {
		case namedMarker.MatchString(stripped), addMarker.MatchString(stripped):
			inBlock = true
		case endMarker.MatchString(stripped):
			inBlock = false
		case !inBlock:
			out = append(out, line)
		}
	}
	return out
}
