package observability_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventhouse/statemachine/pkg/domain"
	"github.com/inventhouse/statemachine/pkg/observability"
)

func record(seq int, from, to string) domain.TraceRecord {
	return domain.TraceRecord{
		Seq:   seq,
		Input: fmt.Sprintf("input-%d", seq),
		From:  domain.Named(from),
		To:    domain.Named(to),
	}
}

func TestRecentTracer_Eviction(t *testing.T) {
	r := observability.NewRecentTracer(2)

	// Five distinct transitions; only the last two survive.
	states := []string{"a", "b", "c", "d", "e", "f"}
	for i := 0; i < 5; i++ {
		r.Matched(record(i+1, states[i], states[i+1]))
	}

	recs := r.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, 4, recs[0].Seq)
	assert.Equal(t, 5, recs[1].Seq)
}

func TestRecentTracer_LoopFolding(t *testing.T) {
	r := observability.NewRecentTracer(3)

	r.Matched(record(1, "a", "b"))
	r.Matched(record(2, "b", "b"))
	r.Matched(record(3, "b", "b"))
	r.Matched(record(4, "b", "b"))

	recs := r.Records()
	require.Len(t, recs, 2, "consecutive self-loops collapse into one record")
	assert.Equal(t, 1, recs[0].Seq)
	assert.Equal(t, 4, recs[1].Seq, "the retained record is the latest loop iteration")
	assert.Equal(t, 3, recs[1].Loops)

	// Leaving the state ends the fold.
	r.Matched(record(5, "b", "c"))
	recs = r.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, 1, recs[2].Loops)
}

func TestRecentTracer_LoopFoldingRendersMarker(t *testing.T) {
	r := observability.NewRecentTracer(-1)
	r.Matched(record(1, "a", "a"))
	r.Matched(record(2, "a", "a"))

	lines := r.FormatTrace()
	require.NotEmpty(t, lines)
	assert.Equal(t, "  ...(Looped 2 times)", lines[0])
}

func TestRecentTracer_Unbounded(t *testing.T) {
	r := observability.NewRecentTracer(-1)
	states := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	for i := 0; i < 10; i++ {
		r.Matched(record(i+1, states[i], states[i+1]))
	}
	assert.Len(t, r.Records(), 10)
	assert.True(t, r.Enabled())
}

func TestRecentTracer_Disabled(t *testing.T) {
	r := observability.NewRecentTracer(0)
	r.Matched(record(1, "a", "b"))
	assert.Empty(t, r.Records())
	assert.False(t, r.Enabled())
}

func TestRecentTracer_RecordsIsACopy(t *testing.T) {
	r := observability.NewRecentTracer(3)
	r.Matched(record(1, "a", "b"))

	recs := r.Records()
	recs[0].Seq = 99
	assert.Equal(t, 1, r.Records()[0].Seq)
}
