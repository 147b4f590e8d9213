package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognized matches any UnrecognizedError via errors.Is.
var ErrUnrecognized = errors.New("unrecognized input")

// ErrUnknownMnemonic matches any UnknownMnemonicError via errors.Is.
var ErrUnknownMnemonic = errors.New("unknown mnemonic")

// ErrCheckpoint matches any CheckpointError via errors.Is.
var ErrCheckpoint = errors.New("checkpoint failed")

// UnrecognizedError reports an input that matched no rule in the current
// state, including the wildcard group. It carries the recorder's recent
// transition history for diagnosis. It is terminal for the Input call that
// produced it, never retried by the engine.
type UnrecognizedError struct {
	Input string
	Seq   int
	State State
	Trace []TraceRecord
}

func (e *UnrecognizedError) Error() string {
	var b strings.Builder
	b.WriteString("unrecognized input\n")
	b.WriteString("StateMachine traceback (most recent transition last):\n")
	for _, rec := range e.Trace {
		for _, line := range rec.Lines() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "'%s' did not recognize %d: '%s'", e.State, e.Seq, e.Input)
	return b.String()
}

func (e *UnrecognizedError) Is(target error) bool {
	return target == ErrUnrecognized
}

// CheckpointError reports a checkpoint predicate that fired. It bypasses
// rule matching entirely, so it is distinct from UnrecognizedError.
type CheckpointError struct {
	Kind    string
	Message string
	Input   string
	Seq     int
}

func (e *CheckpointError) Error() string {
	return fmt.Sprintf("checkpoint %s at input %d (%q): %s", e.Kind, e.Seq, e.Input, e.Message)
}

func (e *CheckpointError) Is(target error) bool {
	return target == ErrCheckpoint
}

// UnknownMnemonicError reports a rule that referenced a test or action name
// absent from the registry. It is fatal at construction time and never
// deferred to processing time.
type UnknownMnemonicError struct {
	// Kind is "test" or "action".
	Kind string

	// Token is the offending mnemonic; Position is its 1-based field
	// position in the rule string.
	Token    string
	Position int

	// Line is the source rule string, when known.
	Line string
}

func (e *UnknownMnemonicError) Error() string {
	msg := fmt.Sprintf("unknown %s mnemonic %q at field %d", e.Kind, e.Token, e.Position)
	if e.Line != "" {
		msg += fmt.Sprintf(" in rule %q", e.Line)
	}
	return msg
}

func (e *UnknownMnemonicError) Is(target error) bool {
	return target == ErrUnknownMnemonic
}

// SyntaxError reports a malformed rule string (no delimiter, too many
// fields, missing state). Like UnknownMnemonicError it aborts machine
// construction entirely.
type SyntaxError struct {
	Line   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bad rule %q: %s", e.Line, e.Reason)
}
