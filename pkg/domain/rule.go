package domain

// Context is the dispatch context handed to predicates and actions. It is a
// snapshot of the machine at the moment a rule is evaluated.
type Context struct {
	// State is the machine's current state.
	State State

	// Dest is the state the machine will move to if this rule fires
	// (already resolved for self-transitions).
	Dest State

	// Count is the 1-based input counter.
	Count int

	// Result is the value produced by the rule's test. It is zero while
	// the test itself runs and is set before the action is invoked, so
	// actions can use captures and other rich test results.
	Result any
}

// Predicate tests an input against a rule. The result value is not just a
// boolean: whatever a successful test produces (a capture list, a count, a
// parsed value) is passed on to the action and the trace recorder.
type Predicate func(input string, tc Context) (result any, ok bool)

// Action computes a rule's output once its test has matched. ok=false means
// "no output" for this input, which is distinct from an empty string output.
// Side effects are the action's own business; the engine never retries them.
type Action func(input string, tc Context) (out any, ok bool)

// Rule is one edge of the machine: fire Action and move to Dest when Test
// matches. Rules added to a state are evaluated in insertion order, and the
// first match wins.
//
// A nil Test always matches (with a true result), a nil Action produces no
// output, and a zero Dest is a self-transition. These are the "absent"
// defaults of the rule language; the zero Rule matches every input and
// keeps the machine in its current state.
type Rule struct {
	Test   Predicate
	Dest   Dest
	Action Action

	// Tag is an optional label used in traces and diagnostics.
	Tag string

	// TestRepr and ActionRepr are human-readable renderings of the test
	// and action for traces, e.g. "m(@bholt)". Empty reprs render as
	// "test" / "action".
	TestRepr   string
	ActionRepr string
}

// TestString returns the test repr, with defaults for unlabeled rules.
func (r Rule) TestString() string {
	if r.TestRepr != "" {
		return r.TestRepr
	}
	if r.Test == nil {
		return "true"
	}
	return "test"
}

// ActionString returns the action repr, with defaults for unlabeled rules.
func (r Rule) ActionString() string {
	if r.ActionRepr != "" {
		return r.ActionRepr
	}
	if r.Action == nil {
		return "drop"
	}
	return "action"
}

// Checkpoint is an out-of-band guard evaluated once per input, before and
// independent of rule matching. A non-empty message aborts processing of
// that input with a CheckpointError of the given Kind.
type Checkpoint struct {
	Check func(input string, tc Context) string
	Kind  string
}
