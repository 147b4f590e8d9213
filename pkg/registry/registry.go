package registry

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/inventhouse/statemachine/pkg/domain"
)

// TestBuilder constructs a predicate from a mnemonic's argument field.
type TestBuilder func(arg string) (domain.Predicate, error)

// ActionBuilder constructs an action from a mnemonic's argument field.
type ActionBuilder func(arg string) (domain.Action, error)

// Registry maps short mnemonics to test and action constructors. Lookups
// are case-insensitive. The rule-language compiler depends only on this
// contract; the vocabulary itself is supplied by the caller (or Builtin).
type Registry struct {
	mu      sync.RWMutex
	tests   map[string]TestBuilder
	actions map[string]ActionBuilder
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tests:   make(map[string]TestBuilder),
		actions: make(map[string]ActionBuilder),
	}
}

// RegisterTest adds a test constructor. An existing mnemonic is overwritten.
func (r *Registry) RegisterTest(name string, b TestBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests[strings.ToLower(name)] = b
}

// RegisterAction adds an action constructor. An existing mnemonic is
// overwritten.
func (r *Registry) RegisterAction(name string, b ActionBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[strings.ToLower(name)] = b
}

// Test looks up a test constructor; ok is false when the mnemonic is not
// registered.
func (r *Registry) Test(name string) (TestBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.tests[strings.ToLower(name)]
	return b, ok
}

// Action looks up an action constructor; ok is false when the mnemonic is
// not registered.
func (r *Registry) Action(name string) (ActionBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.actions[strings.ToLower(name)]
	return b, ok
}

// Builtin returns a registry preloaded with the standard vocabulary:
//
//	tests:   t/true, m/match, s/search, i/in, eq
//	actions: p/input, o/out, d/drop
//
// match and search compile their argument as a regular expression (match is
// anchored at the start of the input); in splits its argument on commas;
// eq compares the whole input for equality; out substitutes {input} and
// {state} in its argument.
func Builtin() *Registry {
	r := New()

	r.RegisterTest("t", trueTest)
	r.RegisterTest("true", trueTest)
	r.RegisterTest("m", matchTest)
	r.RegisterTest("match", matchTest)
	r.RegisterTest("s", searchTest)
	r.RegisterTest("search", searchTest)
	r.RegisterTest("i", inTest)
	r.RegisterTest("in", inTest)
	r.RegisterTest("eq", equalTest)

	r.RegisterAction("p", inputAction)
	r.RegisterAction("input", inputAction)
	r.RegisterAction("o", outAction)
	r.RegisterAction("out", outAction)
	r.RegisterAction("d", dropAction)
	r.RegisterAction("drop", dropAction)

	return r
}

func trueTest(string) (domain.Predicate, error) {
	return func(string, domain.Context) (any, bool) {
		return true, true
	}, nil
}

func matchTest(arg string) (domain.Predicate, error) {
	if !strings.HasPrefix(arg, "^") {
		arg = "^" + arg
	}
	return searchTest(arg)
}

func searchTest(arg string) (domain.Predicate, error) {
	re, err := regexp.Compile(arg)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
	}
	return func(in string, _ domain.Context) (any, bool) {
		m := re.FindStringSubmatch(in)
		if m == nil {
			return nil, false
		}
		return m, true
	}, nil
}

func inTest(arg string) (domain.Predicate, error) {
	items := strings.Split(arg, ",")
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.TrimSpace(it)] = struct{}{}
	}
	return func(in string, _ domain.Context) (any, bool) {
		_, ok := set[in]
		return ok, ok
	}, nil
}

func equalTest(arg string) (domain.Predicate, error) {
	return func(in string, _ domain.Context) (any, bool) {
		ok := in == arg
		return ok, ok
	}, nil
}

func inputAction(string) (domain.Action, error) {
	return func(in string, _ domain.Context) (any, bool) {
		return in, true
	}, nil
}

func outAction(arg string) (domain.Action, error) {
	return func(in string, tc domain.Context) (any, bool) {
		out := strings.ReplaceAll(arg, "{input}", in)
		out = strings.ReplaceAll(out, "{state}", tc.State.String())
		return out, true
	}, nil
}

func dropAction(string) (domain.Action, error) {
	return func(string, domain.Context) (any, bool) {
		return nil, false
	}, nil
}
