package domain

import (
	"fmt"
	"strings"
)

// TraceRecord is the logged snapshot of one successful evaluate-act-transition
// cycle.
type TraceRecord struct {
	// Seq is the input counter value for this input.
	Seq int

	// Input is the raw input token.
	Input string

	// Tag is the matched rule's tag, possibly empty.
	Tag string

	// Result is the value the matched rule's test produced.
	Result any

	// From is the state the rule fired in; To is the state the machine
	// ended up in after the action ran.
	From State
	To   State

	// Dest is the rule's declared destination, before resolution.
	Dest Dest

	TestRepr   string
	ActionRepr string

	// Output is the action's output; HasOutput is false when the action
	// produced no output for this input.
	Output    any
	HasOutput bool

	// Tested is how many rules were evaluated for this input before the
	// match, including the matching rule itself.
	Tested int

	// Loops counts consecutive inputs that stayed in the same state and
	// were folded into this record by a bounded recorder.
	Loops int
}

// Lines renders the record in the transition-history shape that diagnostics
// and downstream tooling key off of:
//
//	3: line2
//	    (2 tested) [tag] result <-- (state, test, action, dst)
//	        state --> new_state
//	        ==> 'out'
func (t TraceRecord) Lines() []string {
	lines := make([]string, 0, 4)
	if t.Loops > 1 {
		lines = append(lines, fmt.Sprintf("  ...(Looped %d times)", t.Loops))
	}
	lines = append(lines, fmt.Sprintf("  %d: %s", t.Seq, t.Input))

	var b strings.Builder
	fmt.Fprintf(&b, "      (%d tested) ", t.Tested)
	if t.Tag != "" {
		fmt.Fprintf(&b, "[%s] ", t.Tag)
	}
	fmt.Fprintf(&b, "%v <-- (%s, %s, %s, %s)", t.Result, t.From, t.TestRepr, t.ActionRepr, t.Dest)
	lines = append(lines, b.String())

	out := "<drop>"
	if t.HasOutput {
		out = fmt.Sprintf("'%v'", t.Output)
	}
	lines = append(lines, fmt.Sprintf("          %s --> %s\n          ==> %s", t.From, t.To, out))
	return lines
}

// Tracer is a write-only side channel that observes every step of input
// processing, not just the winning rule. The engine never consults a tracer
// for control flow.
type Tracer interface {
	// Input is called once per input, before any rule is evaluated.
	Input(seq int, state State, input string)

	// Tested is called for every candidate rule evaluated, with the
	// test's result and whether it matched.
	Tested(state State, rule Rule, result any, matched bool)

	// Matched is called after a rule fired and its action ran.
	Matched(rec TraceRecord)

	// Unrecognized is called when no rule matched the input.
	Unrecognized(seq int, state State, input string)
}
