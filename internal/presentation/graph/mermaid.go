package graph

import (
	"fmt"
	"strings"

	"github.com/inventhouse/statemachine/internal/compiler"
)

// anyNode is the pseudo-node representing the wildcard rule group.
const anyNode = "__any__"

// GenerateMermaid produces a Mermaid flowchart of a compiled rule set.
// States are rectangles, the start state a circle, and the wildcard group a
// single dashed pseudo-node whose edges apply from every state. Edges are
// labeled with the rule's tag, or its test repr when untagged;
// self-transitions loop back to their own state.
func GenerateMermaid(start string, bound []compiler.Bound) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	declared := make(map[string]bool)
	declare := func(name string) string {
		safe := sanitizeMermaidID(name)
		if declared[safe] {
			return safe
		}
		declared[safe] = true
		opener, closer := "[", "]"
		if name == start {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safe, opener, name, closer))
		return safe
	}

	declare(start)
	hasWildcard := false
	for _, b := range bound {
		if b.State.IsWildcard() {
			hasWildcard = true
			continue
		}
		declare(b.State.Name())
	}
	if hasWildcard {
		sb.WriteString(fmt.Sprintf("    %s([\"any state\"])\n", anyNode))
	}

	for _, b := range bound {
		from := anyNode
		if !b.State.IsWildcard() {
			from = sanitizeMermaidID(b.State.Name())
		}

		to := from
		if !b.Rule.Dest.IsSelf() {
			to = declare(b.Rule.Dest.State().Name())
		}

		label := b.Rule.Tag
		if label == "" {
			label = b.Rule.TestString()
		}
		safeLabel := strings.ReplaceAll(label, "\"", "'")

		arrow := fmt.Sprintf("-- \"%s\" -->", safeLabel)
		if b.State.IsWildcard() {
			arrow = fmt.Sprintf("-. \"%s\" .->", safeLabel)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
