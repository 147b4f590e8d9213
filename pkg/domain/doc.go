/*
Package domain contains the core vocabulary of the rule-dispatch engine: states,
rules, predicates, actions, trace records, checkpoints, and the error taxonomy.

These types are pure data and function signatures with no engine behavior, so
they can be shared freely between the runtime, the rule-language compiler, and
any adapter without import cycles.
*/
package domain
