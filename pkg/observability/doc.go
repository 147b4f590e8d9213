/*
Package observability provides tracers for the rule-dispatch engine: a
verbose per-evaluation tracer, a composable multi-tracer, and the bounded
recent-transition recorder that backs unrecognized-input diagnostics.

Tracers are write-only side channels. The engine calls them at every step of
input processing but never reads them back for control flow.
*/
package observability
