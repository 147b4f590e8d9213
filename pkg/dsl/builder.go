package dsl

import (
	"github.com/inventhouse/statemachine"
	"github.com/inventhouse/statemachine/pkg/domain"
)

type entry struct {
	state domain.State
	rule  domain.Rule
}

// Builder accumulates rules in insertion order, which is their
// match-precedence order. It tracks a current state (set by State or Any)
// and a current rule (opened by When); To, Stay, Do, and Tag refine the
// current rule in place.
type Builder struct {
	start string
	adds  []*entry
	state domain.State
	cur   *entry
}

// New creates a builder for a machine starting in the named state.
func New(start string) *Builder {
	return &Builder{start: start, state: domain.Named(start)}
}

// State switches the builder to the named state; following When calls add
// rules there.
func (b *Builder) State(name string) *Builder {
	b.state = domain.Named(name)
	b.cur = nil
	return b
}

// Any switches the builder to the wildcard group, whose rules apply to
// every state after its explicit rules.
func (b *Builder) Any() *Builder {
	b.state = domain.Wildcard
	b.cur = nil
	return b
}

// When opens a new rule in the current state with the given test (nil
// always matches). The rule defaults to a self-transition with no action.
func (b *Builder) When(test domain.Predicate) *Builder {
	e := &entry{state: b.state, rule: domain.Rule{Test: test, Dest: domain.Self()}}
	b.adds = append(b.adds, e)
	b.cur = e
	return b
}

// To sets the current rule's destination state.
func (b *Builder) To(dst string) *Builder {
	b.rule().Dest = domain.ToName(dst)
	return b
}

// Stay makes the current rule an explicit self-transition. It is the
// default; the method exists for readable rule chains.
func (b *Builder) Stay() *Builder {
	b.rule().Dest = domain.Self()
	return b
}

// Do sets the current rule's action.
func (b *Builder) Do(a domain.Action) *Builder {
	b.rule().Action = a
	return b
}

// Tag labels the current rule for traces and diagnostics.
func (b *Builder) Tag(tag string) *Builder {
	b.rule().Tag = tag
	return b
}

// Reprs sets the current rule's human-readable test and action renderings
// used in traces.
func (b *Builder) Reprs(test, action string) *Builder {
	r := b.rule()
	r.TestRepr = test
	r.ActionRepr = action
	return b
}

// Build assembles the machine.
func (b *Builder) Build(opts ...statemachine.Option) *statemachine.Machine {
	m := statemachine.New(b.start, opts...)
	for _, e := range b.adds {
		m.AddRule(e.state, e.rule)
	}
	return m
}

func (b *Builder) rule() *domain.Rule {
	if b.cur == nil {
		panic("dsl: rule refinement before When")
	}
	return &b.cur.rule
}
