/*
Package statemachine is a general-purpose, declarative rule-dispatch engine
for processing a sequence of discrete inputs (typically text lines) through
a labeled-state machine, plus a compact rule mini-language for wiring
machines up from delimited strings and free-form rule files.

# Concept

A machine is a table of rules grouped by state. Each rule is a (test,
destination, action, tag) tuple; feeding the machine an input evaluates the
current state's rules in insertion order, then the wildcard rules that
apply to every state, and follows the first rule whose test matches. The
action's output (if any) is returned, a trace record is kept, and the
machine moves to the rule's destination -- or stays put for a
self-transition. Input that matches nothing produces a diagnosable failure
carrying a recent transition history.

# Usage

	m := statemachine.New("start")
	m.Add("start", statemachine.MatchTest("@bholt"), "bholt", statemachine.InputAction, "hello")
	m.Add("bholt", statemachine.MatchTest("@"), "start", nil, "bye")
	m.Add("bholt", statemachine.TrueTest, statemachine.Self, statemachine.InputAction, "mine")
	m.Add("start", statemachine.TrueTest, statemachine.Self, nil, "skip")

	outs, err := m.Parse([]string{"hello", "@bholt", "line1", "@other", "line2"})
	// outs: ["@bholt", "line1"]

Machines can also be compiled from rule text; see Compile and the rule
grammar in the repository documentation.

A machine instance is single-threaded: drive it from one goroutine, or run
one instance per concurrent stream.
*/
package statemachine
