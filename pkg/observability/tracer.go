package observability

import (
	"fmt"
	"io"

	"github.com/inventhouse/statemachine/pkg/domain"
)

// Decorator transforms a trace line before it is written, e.g. to add
// terminal styling. The identity function is the default.
type Decorator func(string) string

// PrefixTracer writes every evaluation attempt to W, one line per event,
// each prefixed so trace output can be told apart from normal output.
// The zero value is not usable; use NewPrefixTracer.
type PrefixTracer struct {
	W        io.Writer
	Prefix   string
	Decorate Decorator
}

// NewPrefixTracer returns a verbose tracer writing to w with the given
// prefix. An empty prefix defaults to "T>".
func NewPrefixTracer(w io.Writer, prefix string) *PrefixTracer {
	if prefix == "" {
		prefix = "T>"
	}
	return &PrefixTracer{W: w, Prefix: prefix, Decorate: func(s string) string { return s }}
}

func (t *PrefixTracer) emit(line string) {
	fmt.Fprintf(t.W, "%s %s\n", t.Prefix, t.Decorate(line))
}

func (t *PrefixTracer) Input(seq int, state domain.State, input string) {
	t.emit("")
	t.emit(fmt.Sprintf("=====  %s  =====", state))
	t.emit(fmt.Sprintf("%d: %s", seq, input))
}

func (t *PrefixTracer) Tested(state domain.State, rule domain.Rule, result any, matched bool) {
	line := "\t"
	if rule.Tag != "" {
		line = fmt.Sprintf("\t[%s] ", rule.Tag)
	}
	line += fmt.Sprintf("%v <-- (%s, %s, %s, %s)", result, state, rule.TestString(), rule.ActionString(), rule.Dest)
	t.emit(line)
}

func (t *PrefixTracer) Matched(rec domain.TraceRecord) {
	t.emit(fmt.Sprintf("\t    %s --> %s", rec.From, rec.To))
	out := "<drop>"
	if rec.HasOutput {
		out = fmt.Sprintf("'%v'", rec.Output)
	}
	t.emit(fmt.Sprintf("\t    ==> %s", out))
}

func (t *PrefixTracer) Unrecognized(seq int, state domain.State, input string) {
	t.emit("\t(no match)")
}

// MultiTracer fans every event out to each of its tracers in order.
type MultiTracer []domain.Tracer

func (m MultiTracer) Input(seq int, state domain.State, input string) {
	for _, t := range m {
		t.Input(seq, state, input)
	}
}

func (m MultiTracer) Tested(state domain.State, rule domain.Rule, result any, matched bool) {
	for _, t := range m {
		t.Tested(state, rule, result, matched)
	}
}

func (m MultiTracer) Matched(rec domain.TraceRecord) {
	for _, t := range m {
		t.Matched(rec)
	}
}

func (m MultiTracer) Unrecognized(seq int, state domain.State, input string) {
	for _, t := range m {
		t.Unrecognized(seq, state, input)
	}
}
