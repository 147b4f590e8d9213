/*
Package dsl provides a fluent builder for constructing machines
programmatically, as an alternative to the delimited rule language. It is
type-safe and plays well with IDE completion, which makes it the natural
choice for machines defined in Go code and for tests.

Example:

	m := dsl.New("start").
		State("start").
		When(statemachine.MatchTest("@bholt")).To("bholt").Do(statemachine.InputAction).Tag("hello").
		When(statemachine.TrueTest).Stay().Tag("skip").
		State("bholt").
		When(statemachine.MatchTest("@")).To("start").Tag("bye").
		When(statemachine.TrueTest).Stay().Do(statemachine.InputAction).Tag("mine").
		Build()
*/
package dsl
