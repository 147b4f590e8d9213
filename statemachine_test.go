package statemachine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statemachine "github.com/inventhouse/statemachine"
	"github.com/inventhouse/statemachine/pkg/domain"
)

// newCollector is the handle-collection machine used throughout: it idles in
// start, and between an @bholt marker and the next @-marker it passes every
// line through.
func newCollector(opts ...statemachine.Option) *statemachine.Machine {
	m := statemachine.New("start", opts...)
	m.Add("start", statemachine.MatchTest("@bholt"), "bholt", statemachine.InputAction, "found")
	m.Add("start", statemachine.TrueTest, statemachine.Self, nil, "wait")
	m.Add("bholt", statemachine.MatchTest("@"), "start", nil, "next-section")
	m.Add("bholt", statemachine.TrueTest, statemachine.Self, statemachine.InputAction, "collect")
	return m
}

func TestMachine_EndToEnd(t *testing.T) {
	m := newCollector()

	outs, err := m.Parse([]string{"hello", "@bholt", "line1", "@other", "line2"})
	require.NoError(t, err)
	assert.Equal(t, []any{"@bholt", "line1"}, outs)
	assert.Equal(t, "start", m.State())
	assert.Equal(t, 5, m.Count())
}

func TestMachine_ParseStopsAtError(t *testing.T) {
	m := statemachine.New("start")
	m.Add("start", statemachine.EqualTest("ok"), statemachine.Self, statemachine.InputAction, "")

	outs, err := m.Parse([]string{"ok", "boom", "ok"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnrecognized))
	assert.Equal(t, []any{"ok"}, outs, "outputs before the error are kept")
	assert.Equal(t, 2, m.Count())

	// The error aborts only that input; the machine still works.
	out, ok, err := m.Input("ok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ok", out)
}

func TestMachine_AnyState(t *testing.T) {
	m := newCollector()
	m.Add(statemachine.Any, statemachine.EqualTest("reset"), "start", statemachine.OutputAction("reset!"), "reset")

	_, _, err := m.Input("@bholt")
	require.NoError(t, err)
	require.Equal(t, "bholt", m.State())

	// Explicit bholt rules win first; the collect rule matches "reset"
	// before the wildcard is ever consulted.
	out, _, err := m.Input("reset")
	require.NoError(t, err)
	assert.Equal(t, "reset", out)
	assert.Equal(t, "bholt", m.State())
}

func TestMachine_UnrecognizedTraceback(t *testing.T) {
	m := statemachine.New("start", statemachine.WithTraceDepth(10))
	m.Add("start", statemachine.EqualTest("go"), "end", nil, "to-end")

	_, _, err := m.Input("go")
	require.NoError(t, err)

	_, _, err = m.Input("stuck")
	require.Error(t, err)

	var unrec *domain.UnrecognizedError
	require.ErrorAs(t, err, &unrec)
	require.NotEmpty(t, unrec.Trace)
	last := unrec.Trace[len(unrec.Trace)-1]
	assert.Equal(t, "start", last.From.Name())
	assert.Equal(t, "end", last.To.Name())
}

func TestMachine_IgnoreUnrecognized(t *testing.T) {
	m := statemachine.New("start", statemachine.WithIgnoreUnrecognized())

	outs, err := m.Parse([]string{"a", "b", "c"})
	assert.NoError(t, err)
	assert.Empty(t, outs)
	assert.Equal(t, 3, m.Count())
}

func TestMachine_Checkpoint(t *testing.T) {
	m := statemachine.New("start",
		statemachine.WithCheckpoint("line-limit", func(_ string, tc domain.Context) string {
			if tc.Count > 1 {
				return "limit reached"
			}
			return ""
		}),
	)
	m.Add("start", statemachine.TrueTest, statemachine.Self, nil, "")

	_, _, err := m.Input("fine")
	require.NoError(t, err)
	_, _, err = m.Input("over")
	assert.True(t, errors.Is(err, domain.ErrCheckpoint))
}

func TestMachine_StackActions(t *testing.T) {
	m := statemachine.New("list")
	m.Add("list", statemachine.EqualTest("pop"), statemachine.Self, m.PopAction(""), "pop")
	m.Add("list", statemachine.TrueTest, statemachine.Self, m.PushInputAction(""), "push")

	_, err := m.Parse([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.StackDepth(""))

	out, ok, err := m.Input("pop")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "y", out)
}

func TestHelpers(t *testing.T) {
	tc := domain.Context{}

	t.Run("InTest", func(t *testing.T) {
		p := statemachine.InTest("a", "b")
		_, ok := p("b", tc)
		assert.True(t, ok)
		_, ok = p("c", tc)
		assert.False(t, ok)
	})

	t.Run("AnyTest returns first truthy result", func(t *testing.T) {
		p := statemachine.AnyTest(
			statemachine.EqualTest("one"),
			statemachine.MatchTest(`\d+`),
		)
		result, ok := p("123", tc)
		require.True(t, ok)
		assert.Equal(t, []string{"123"}, result)

		_, ok = p("nope", tc)
		assert.False(t, ok)
	})

	t.Run("SearchTest is unanchored", func(t *testing.T) {
		p := statemachine.SearchTest("mid")
		_, ok := p("a mid b", tc)
		assert.True(t, ok)

		anchored := statemachine.MatchTest("mid")
		_, ok = anchored("a mid b", tc)
		assert.False(t, ok)
	})

	t.Run("OutputAction ignores the input", func(t *testing.T) {
		a := statemachine.OutputAction(42)
		out, ok := a("anything", tc)
		assert.True(t, ok)
		assert.Equal(t, 42, out)
	})
}
