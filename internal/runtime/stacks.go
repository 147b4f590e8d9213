package runtime

import (
	"github.com/inventhouse/statemachine/pkg/domain"
)

// StateStack is the reserved stack name used by the push-state and
// pop-state actions, kept separate from the default data stack.
const StateStack = "<state>"

// Push appends a value to the named stack, creating it on first use. The
// empty name is the default data stack.
func (e *Engine) Push(stack string, v any) {
	e.stacks[stack] = append(e.stacks[stack], v)
}

// Pop removes and returns the top of the named stack; ok is false when the
// stack is empty or unknown.
func (e *Engine) Pop(stack string) (any, bool) {
	s := e.stacks[stack]
	if len(s) == 0 {
		return nil, false
	}
	v := s[len(s)-1]
	e.stacks[stack] = s[:len(s)-1]
	return v, true
}

// Depth returns the number of values on the named stack.
func (e *Engine) Depth(stack string) int {
	return len(e.stacks[stack])
}

// PushInputAction returns an action that pushes the input onto the named
// stack and produces no output.
func (e *Engine) PushInputAction(stack string) domain.Action {
	return func(in string, _ domain.Context) (any, bool) {
		e.Push(stack, in)
		return nil, false
	}
}

// PushResultAction returns an action that pushes the test result onto the
// named stack and produces no output.
func (e *Engine) PushResultAction(stack string) domain.Action {
	return func(_ string, tc domain.Context) (any, bool) {
		e.Push(stack, tc.Result)
		return nil, false
	}
}

// PopAction returns an action that pops the named stack and outputs the
// popped value; it produces no output when the stack is empty.
func (e *Engine) PopAction(stack string) domain.Action {
	return func(string, domain.Context) (any, bool) {
		return e.Pop(stack)
	}
}

// PushStateAction returns an action that pushes the pre-transition state
// onto the state stack.
func (e *Engine) PushStateAction() domain.Action {
	return func(_ string, tc domain.Context) (any, bool) {
		e.Push(StateStack, tc.State)
		return nil, false
	}
}

// PopStateAction returns an action that pops the state stack and makes the
// popped state current, overriding the rule's own destination. With an
// empty state stack the rule's destination stands.
func (e *Engine) PopStateAction() domain.Action {
	return func(string, domain.Context) (any, bool) {
		if v, ok := e.Pop(StateStack); ok {
			if s, ok := v.(domain.State); ok {
				e.SetState(s)
			}
		}
		return nil, false
	}
}
