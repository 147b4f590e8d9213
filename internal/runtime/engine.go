package runtime

import (
	"io"
	"log/slog"

	"github.com/inventhouse/statemachine/pkg/domain"
	"github.com/inventhouse/statemachine/pkg/observability"
)

// DefaultTraceDepth is how many recent transitions the engine keeps for
// unrecognized-input reports when no depth is configured.
const DefaultTraceDepth = 5

// Engine is the rule dispatcher. It owns the current state, the input
// counter, the rule table, and the recent-transition recorder.
//
// An Engine is single-threaded by design: the caller feeds inputs one at a
// time and no internal locking is provided. Independent streams need
// independent engines; rule tables are read-only after construction and may
// be shared by copying rules into each instance.
type Engine struct {
	rules   map[domain.State][]domain.Rule
	globals []domain.Rule

	state domain.State
	count int

	recent      *observability.RecentTracer
	tracer      domain.Tracer
	checkpoints []domain.Checkpoint
	ignoreMiss  bool

	stacks map[string][]any

	logger *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTraceDepth bounds the recent-transition recorder. Negative is
// unbounded; zero disables recording, leaving unrecognized-input reports
// with only minimal context.
func WithTraceDepth(depth int) Option {
	return func(e *Engine) {
		e.recent = observability.NewRecentTracer(depth)
	}
}

// WithTracer attaches a verbose tracer that sees every evaluation attempt.
func WithTracer(t domain.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithCheckpoint appends a checkpoint evaluated once per input before rule
// matching.
func WithCheckpoint(cp domain.Checkpoint) Option {
	return func(e *Engine) {
		e.checkpoints = append(e.checkpoints, cp)
	}
}

// WithIgnoreUnrecognized makes Input drop unmatched inputs silently instead
// of returning an UnrecognizedError.
func WithIgnoreUnrecognized() Option {
	return func(e *Engine) {
		e.ignoreMiss = true
	}
}

// WithLogger sets the engine's debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine in the start state with an empty rule table.
func New(start domain.State, opts ...Option) *Engine {
	e := &Engine{
		rules:  make(map[domain.State][]domain.Rule),
		state:  start,
		stacks: make(map[string][]any),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.recent == nil {
		e.recent = observability.NewRecentTracer(DefaultTraceDepth)
	}
	return e
}

// AddRule appends a rule to the given state's group, or to the wildcard
// group. Within a group, rules are evaluated in the order they were added;
// explicit rules are always evaluated before wildcard rules regardless of
// insertion order across the two groups.
func (e *Engine) AddRule(state domain.State, r domain.Rule) {
	if state.IsWildcard() {
		e.globals = append(e.globals, r)
		return
	}
	e.rules[state] = append(e.rules[state], r)
}

// State returns the current state.
func (e *Engine) State() domain.State {
	return e.state
}

// SetState forces the current state. It exists for actions that manage
// state themselves, such as the pop-state stack action; normal transitions
// never need it.
func (e *Engine) SetState(s domain.State) {
	e.state = s
}

// Count returns the number of inputs processed so far.
func (e *Engine) Count() int {
	return e.count
}

// Rules returns the rule group for a state (the wildcard group for
// Wildcard). The returned slice is the engine's own; treat it as read-only.
func (e *Engine) Rules(state domain.State) []domain.Rule {
	if state.IsWildcard() {
		return e.globals
	}
	return e.rules[state]
}

// States returns every named state that has at least one explicit rule.
func (e *Engine) States() []domain.State {
	out := make([]domain.State, 0, len(e.rules))
	for s := range e.rules {
		out = append(out, s)
	}
	return out
}

// Recent returns the recorder's retained transition history.
func (e *Engine) Recent() []domain.TraceRecord {
	return e.recent.Records()
}

// Input dispatches one token: checkpoints first, then the current state's
// rules followed by the wildcard rules, first truthy test wins. On a match
// it runs the action, records a trace entry, transitions, and returns the
// action's output (ok=false meaning "no output"). With no match it returns
// an UnrecognizedError carrying the recent transition history.
func (e *Engine) Input(in string) (out any, ok bool, err error) {
	e.count++

	tc := domain.Context{State: e.state, Count: e.count}
	for _, cp := range e.checkpoints {
		if msg := cp.Check(in, tc); msg != "" {
			e.logger.Debug("checkpoint fired", "kind", cp.Kind, "input", in, "count", e.count)
			return nil, false, &domain.CheckpointError{
				Kind:    cp.Kind,
				Message: msg,
				Input:   in,
				Seq:     e.count,
			}
		}
	}

	if e.tracer != nil {
		e.tracer.Input(e.count, e.state, in)
	}

	tested := 0
	for _, group := range [][]domain.Rule{e.rules[e.state], e.globals} {
		for _, r := range group {
			tested++
			tc := domain.Context{
				State: e.state,
				Dest:  r.Dest.Resolve(e.state),
				Count: e.count,
			}
			result, matched := evalTest(r, in, tc)
			if e.tracer != nil {
				e.tracer.Tested(e.state, r, result, matched)
			}
			if !matched {
				continue
			}
			return e.fire(in, r, result, tc, tested)
		}
	}

	if e.tracer != nil {
		e.tracer.Unrecognized(e.count, e.state, in)
	}
	if e.ignoreMiss {
		e.logger.Debug("unrecognized input ignored", "state", e.state, "input", in, "count", e.count)
		return nil, false, nil
	}
	return nil, false, &domain.UnrecognizedError{
		Input: in,
		Seq:   e.count,
		State: e.state,
		Trace: e.recent.Records(),
	}
}

// fire applies a matched rule: transition first, then the action (so an
// action can override the end state, e.g. popping a state stack), then the
// trace record with the actual end state.
func (e *Engine) fire(in string, r domain.Rule, result any, tc domain.Context, tested int) (any, bool, error) {
	from := e.state
	e.state = r.Dest.Resolve(from)

	tc.Result = result
	var out any
	hasOut := false
	if r.Action != nil {
		out, hasOut = r.Action(in, tc)
	}

	rec := domain.TraceRecord{
		Seq:        tc.Count,
		Input:      in,
		Tag:        r.Tag,
		Result:     result,
		From:       from,
		To:         e.state,
		Dest:       r.Dest,
		TestRepr:   r.TestString(),
		ActionRepr: r.ActionString(),
		Output:     out,
		HasOutput:  hasOut,
		Tested:     tested,
	}
	e.recent.Matched(rec)
	if e.tracer != nil {
		e.tracer.Matched(rec)
	}
	return out, hasOut, nil
}

func evalTest(r domain.Rule, in string, tc domain.Context) (any, bool) {
	if r.Test == nil {
		return true, true
	}
	return r.Test(in, tc)
}
