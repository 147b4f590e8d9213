package domain

// State identifies a group of rules. It is either a named state or the
// wildcard, whose rules apply to every state and are evaluated after any
// explicit rules. States are comparable and usable as map keys.
type State struct {
	name     string
	wildcard bool
}

// Wildcard is the distinguished "any state" marker. Exactly one wildcard
// rule group exists per machine.
var Wildcard = State{wildcard: true}

// Named returns the state with the given name.
func Named(name string) State {
	return State{name: name}
}

// Name returns the state's name; it is empty for the wildcard.
func (s State) Name() string {
	return s.name
}

// IsWildcard reports whether this is the wildcard marker.
func (s State) IsWildcard() bool {
	return s.wildcard
}

func (s State) String() string {
	if s.wildcard {
		return "*"
	}
	return s.name
}

// Dest is a rule's destination: either an explicit state or Self, which
// keeps the machine in its current state. The zero Dest is Self, so rules
// built without a destination stay in-state.
type Dest struct {
	state State
	to    bool
}

// Self returns the self-transition destination.
func Self() Dest {
	return Dest{}
}

// To returns a destination transitioning to the given state.
func To(s State) Dest {
	return Dest{state: s, to: true}
}

// ToName returns a destination transitioning to the named state.
func ToName(name string) Dest {
	return Dest{state: Named(name), to: true}
}

// IsSelf reports whether this destination is a self-transition.
func (d Dest) IsSelf() bool {
	return !d.to
}

// State returns the explicit destination state; only meaningful when
// IsSelf is false.
func (d Dest) State() State {
	return d.state
}

// Resolve returns the state the machine ends up in when a rule with this
// destination fires from current.
func (d Dest) Resolve(current State) State {
	if !d.to {
		return current
	}
	return d.state
}

func (d Dest) String() string {
	if !d.to {
		return "<self>"
	}
	return d.state.String()
}
