package observability

import "github.com/inventhouse/statemachine/pkg/domain"

// Attempt is one rule evaluation observed while processing an input.
type Attempt struct {
	State   domain.State
	Rule    domain.Rule
	Result  any
	Matched bool
}

// ContextTracer collects the full context of the machine's most recent
// input: the input itself, every rule tested against it, and the outcome.
// Where RecentTracer keeps a history of matches across inputs, a
// ContextTracer answers "what was the machine doing just now", which is
// the view an error handler wants when an input goes wrong. The zero
// value is ready to use.
type ContextTracer struct {
	// Seq, State and Line describe the input being processed: its
	// counter value, the state it arrived in, and the raw input.
	Seq   int
	State domain.State
	Line  string

	// Attempts are the rules evaluated so far for this input, in
	// evaluation order.
	Attempts []Attempt

	// Record is the winning evaluation, nil until a rule matches.
	Record *domain.TraceRecord

	// Missed reports that every rule was tested and none matched.
	Missed bool
}

func (c *ContextTracer) Input(seq int, state domain.State, input string) {
	c.Seq, c.State, c.Line = seq, state, input
	c.Attempts = c.Attempts[:0]
	c.Record = nil
	c.Missed = false
}

func (c *ContextTracer) Tested(state domain.State, rule domain.Rule, result any, matched bool) {
	c.Attempts = append(c.Attempts, Attempt{State: state, Rule: rule, Result: result, Matched: matched})
}

func (c *ContextTracer) Matched(rec domain.TraceRecord) {
	c.Record = &rec
}

func (c *ContextTracer) Unrecognized(seq int, state domain.State, input string) {
	c.Missed = true
}
