package observability

import (
	"github.com/inventhouse/statemachine/pkg/domain"
)

// RecentTracer keeps a bounded history of significant transitions to provide
// a recent "traceback", particularly for diagnosing unrecognized input.
//
// Only successful transitions are recorded. Consecutive transitions that
// stay in the same state are counted but only the last one is retained, so
// a tight self-loop does not flush the interesting history out of a small
// buffer.
type RecentTracer struct {
	depth int // > 0 bounded, < 0 unbounded, 0 disabled
	buf   []domain.TraceRecord
}

// NewRecentTracer returns a recorder with the given depth. A negative depth
// is unbounded; zero disables recording entirely.
func NewRecentTracer(depth int) *RecentTracer {
	return &RecentTracer{depth: depth}
}

// Enabled reports whether the recorder keeps any history.
func (r *RecentTracer) Enabled() bool {
	return r.depth != 0
}

func (r *RecentTracer) Input(seq int, state domain.State, input string) {}

func (r *RecentTracer) Tested(state domain.State, rule domain.Rule, result any, matched bool) {}

func (r *RecentTracer) Matched(rec domain.TraceRecord) {
	if r.depth == 0 {
		return
	}
	rec.Loops = 1
	if n := len(r.buf); n > 0 {
		last := r.buf[n-1]
		if rec.From == rec.To && last.From == rec.From {
			rec.Loops = last.Loops + 1
			r.buf = r.buf[:n-1]
		}
	}
	r.buf = append(r.buf, rec)
	if r.depth > 0 && len(r.buf) > r.depth {
		r.buf = r.buf[len(r.buf)-r.depth:]
	}
}

func (r *RecentTracer) Unrecognized(seq int, state domain.State, input string) {}

// Records returns a copy of the retained history, oldest first.
func (r *RecentTracer) Records() []domain.TraceRecord {
	out := make([]domain.TraceRecord, len(r.buf))
	copy(out, r.buf)
	return out
}

// FormatTrace renders the retained history as the transition-history lines
// used in unrecognized-input reports.
func (r *RecentTracer) FormatTrace() []string {
	var lines []string
	for _, rec := range r.buf {
		lines = append(lines, rec.Lines()...)
	}
	return lines
}
