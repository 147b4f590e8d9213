package statemachine

import (
	"regexp"

	"github.com/inventhouse/statemachine/pkg/domain"
)

// TrueTest always matches, with a plain true result.
func TrueTest(string, domain.Context) (any, bool) {
	return true, true
}

// InputAction outputs the input that matched the transition.
func InputAction(in string, _ domain.Context) (any, bool) {
	return in, true
}

// OutputAction returns an action that outputs a fixed value.
func OutputAction(v any) domain.Action {
	return func(string, domain.Context) (any, bool) {
		return v, true
	}
}

// EqualTest returns a test matching exactly the given input.
func EqualTest(want string) domain.Predicate {
	return func(in string, _ domain.Context) (any, bool) {
		ok := in == want
		return ok, ok
	}
}

// InTest returns a test matching any of the given inputs.
func InTest(items ...string) domain.Predicate {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return func(in string, _ domain.Context) (any, bool) {
		_, ok := set[in]
		return ok, ok
	}
}

// AnyTest returns a test producing the first truthy result of the given
// tests.
func AnyTest(tests ...domain.Predicate) domain.Predicate {
	return func(in string, tc domain.Context) (any, bool) {
		for _, t := range tests {
			if r, ok := t(in, tc); ok {
				return r, true
			}
		}
		return nil, false
	}
}

// MatchTest returns a test matching the input against a regular expression
// anchored at the start; the result is the submatch list. The pattern must
// compile -- machines are built before processing begins, so a bad pattern
// is a construction failure.
func MatchTest(pattern string) domain.Predicate {
	re := regexp.MustCompile("^(?:" + pattern + ")")
	return regexpTest(re)
}

// SearchTest is MatchTest without the anchor: the pattern may match
// anywhere in the input.
func SearchTest(pattern string) domain.Predicate {
	return regexpTest(regexp.MustCompile(pattern))
}

func regexpTest(re *regexp.Regexp) domain.Predicate {
	return func(in string, _ domain.Context) (any, bool) {
		m := re.FindStringSubmatch(in)
		if m == nil {
			return nil, false
		}
		return m, true
	}
}
