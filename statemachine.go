package statemachine

import (
	"log/slog"

	"github.com/inventhouse/statemachine/internal/runtime"
	"github.com/inventhouse/statemachine/pkg/domain"
)

// Version is the release version of the module.
const Version = "0.4.0"

// State name spellings accepted by Add: Any adds a rule to the wildcard
// group, Self makes a rule a self-transition.
const (
	Any  = "*"
	Self = ""
)

// Machine is the public face of the rule-dispatch engine.
type Machine struct {
	engine *runtime.Engine
}

// Option configures a Machine at construction time.
type Option func(*cfg)

type cfg struct {
	engineOpts []runtime.Option
}

// WithTraceDepth bounds the recent-transition recorder: negative is
// unbounded, zero disables recording. The default keeps the last five
// transitions.
func WithTraceDepth(depth int) Option {
	return func(c *cfg) {
		c.engineOpts = append(c.engineOpts, runtime.WithTraceDepth(depth))
	}
}

// WithTracer attaches a verbose tracer that observes every evaluation
// attempt, not just winning rules.
func WithTracer(t domain.Tracer) Option {
	return func(c *cfg) {
		c.engineOpts = append(c.engineOpts, runtime.WithTracer(t))
	}
}

// WithCheckpoint adds a checkpoint evaluated before rule matching on every
// input; a non-empty message aborts that input with a CheckpointError.
func WithCheckpoint(kind string, check func(input string, tc domain.Context) string) Option {
	return func(c *cfg) {
		c.engineOpts = append(c.engineOpts, runtime.WithCheckpoint(domain.Checkpoint{Kind: kind, Check: check}))
	}
}

// WithIgnoreUnrecognized drops unmatched inputs silently instead of
// returning an UnrecognizedError.
func WithIgnoreUnrecognized() Option {
	return func(c *cfg) {
		c.engineOpts = append(c.engineOpts, runtime.WithIgnoreUnrecognized())
	}
}

// WithLogger sets the machine's debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *cfg) {
		c.engineOpts = append(c.engineOpts, runtime.WithLogger(l))
	}
}

// New creates a machine in the named start state.
func New(start string, opts ...Option) *Machine {
	var c cfg
	for _, opt := range opts {
		opt(&c)
	}
	return &Machine{engine: runtime.New(domain.Named(start), c.engineOpts...)}
}

// Add appends a rule. state Any adds it to the wildcard group; dst Self
// keeps the machine in its current state. A nil test always matches and a
// nil action produces no output. Rules are matched in the order added.
func (m *Machine) Add(state string, test domain.Predicate, dst string, action domain.Action, tag string) {
	src := domain.Named(state)
	if state == Any {
		src = domain.Wildcard
	}
	dest := domain.Self()
	if dst != Self {
		dest = domain.ToName(dst)
	}
	m.engine.AddRule(src, domain.Rule{Test: test, Dest: dest, Action: action, Tag: tag})
}

// AddRule appends a fully specified rule to a state (or the wildcard).
func (m *Machine) AddRule(state domain.State, r domain.Rule) {
	m.engine.AddRule(state, r)
}

// Input dispatches one token and returns the matched rule's output.
// ok=false means the input produced no output (which is distinct from an
// empty output). The error is an UnrecognizedError or CheckpointError; both
// abort only this call, and the machine can keep processing further input.
func (m *Machine) Input(in string) (out any, ok bool, err error) {
	return m.engine.Input(in)
}

// Parse feeds inputs in order and collects the outputs of matched rules,
// skipping dropped ones. It stops at the first error, returning the outputs
// collected so far alongside it.
func (m *Machine) Parse(inputs []string) ([]any, error) {
	var outs []any
	for _, in := range inputs {
		out, ok, err := m.Input(in)
		if err != nil {
			return outs, err
		}
		if ok {
			outs = append(outs, out)
		}
	}
	return outs, nil
}

// State returns the current state's name.
func (m *Machine) State() string {
	return m.engine.State().Name()
}

// Count returns the number of inputs processed.
func (m *Machine) Count() int {
	return m.engine.Count()
}

// Recent returns the recorder's retained transition history, oldest first.
func (m *Machine) Recent() []domain.TraceRecord {
	return m.engine.Recent()
}

// PushInputAction returns an action that pushes the input onto the named
// stack ("" is the default data stack) and produces no output.
func (m *Machine) PushInputAction(stack string) domain.Action {
	return m.engine.PushInputAction(stack)
}

// PushResultAction returns an action that pushes the test result onto the
// named stack and produces no output.
func (m *Machine) PushResultAction(stack string) domain.Action {
	return m.engine.PushResultAction(stack)
}

// PopAction returns an action that pops the named stack and outputs the
// popped value, or no output when the stack is empty.
func (m *Machine) PopAction(stack string) domain.Action {
	return m.engine.PopAction(stack)
}

// PushStateAction returns an action that remembers the pre-transition state
// on the machine's state stack.
func (m *Machine) PushStateAction() domain.Action {
	return m.engine.PushStateAction()
}

// PopStateAction returns an action that returns the machine to the most
// recently remembered state, overriding the rule's own destination.
func (m *Machine) PopStateAction() domain.Action {
	return m.engine.PopStateAction()
}

// StackDepth returns the number of values on the named stack.
func (m *Machine) StackDepth(stack string) int {
	return m.engine.Depth(stack)
}
