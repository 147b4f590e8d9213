package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventhouse/statemachine/internal/runtime"
	"github.com/inventhouse/statemachine/pkg/domain"
)

func equals(want string) domain.Predicate {
	return func(in string, _ domain.Context) (any, bool) {
		ok := in == want
		return ok, ok
	}
}

func always(in string, _ domain.Context) (any, bool) {
	return true, true
}

func passInput(in string, _ domain.Context) (any, bool) {
	return in, true
}

func TestEngine_Input(t *testing.T) {
	t.Run("first match wins", func(t *testing.T) {
		eng := runtime.New(domain.Named("start"))
		eng.AddRule(domain.Named("start"), domain.Rule{Test: always, Dest: domain.Self(), Action: func(string, domain.Context) (any, bool) { return "first", true }})
		eng.AddRule(domain.Named("start"), domain.Rule{Test: always, Dest: domain.Self(), Action: func(string, domain.Context) (any, bool) { return "second", true }})

		out, ok, err := eng.Input("anything")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "first", out)
	})

	t.Run("wildcard only after explicit", func(t *testing.T) {
		eng := runtime.New(domain.Named("start"))
		// Wildcard added first must still lose to the state rule.
		eng.AddRule(domain.Wildcard, domain.Rule{Test: always, Dest: domain.Self(), Action: func(string, domain.Context) (any, bool) { return "wild", true }})
		eng.AddRule(domain.Named("start"), domain.Rule{Test: always, Dest: domain.Self(), Action: func(string, domain.Context) (any, bool) { return "explicit", true }})

		out, _, err := eng.Input("x")
		require.NoError(t, err)
		assert.Equal(t, "explicit", out)
	})

	t.Run("wildcard catches in any state", func(t *testing.T) {
		eng := runtime.New(domain.Named("start"))
		eng.AddRule(domain.Named("start"), domain.Rule{Test: equals("go"), Dest: domain.ToName("work")})
		eng.AddRule(domain.Wildcard, domain.Rule{Test: always, Dest: domain.Self(), Action: passInput})

		_, _, err := eng.Input("go")
		require.NoError(t, err)
		require.Equal(t, "work", eng.State().Name())

		out, ok, err := eng.Input("anything")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "anything", out)
		assert.Equal(t, "work", eng.State().Name(), "wildcard self-transition must not move the machine")
	})

	t.Run("self transition keeps state even with output", func(t *testing.T) {
		eng := runtime.New(domain.Named("loop"))
		eng.AddRule(domain.Named("loop"), domain.Rule{Test: always, Dest: domain.Self(), Action: passInput})

		out, ok, err := eng.Input("hello")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "hello", out)
		assert.Equal(t, "loop", eng.State().Name())
	})

	t.Run("nil test always matches, nil action drops", func(t *testing.T) {
		eng := runtime.New(domain.Named("start"))
		eng.AddRule(domain.Named("start"), domain.Rule{Dest: domain.ToName("next")})

		out, ok, err := eng.Input("x")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, out)
		assert.Equal(t, "next", eng.State().Name())
	})

	t.Run("zero rule matches and stays in-state", func(t *testing.T) {
		eng := runtime.New(domain.Named("start"))
		eng.AddRule(domain.Named("start"), domain.Rule{})

		out, ok, err := eng.Input("x")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, out)
		assert.Equal(t, "start", eng.State().Name(), "the zero destination is a self-transition")
	})

	t.Run("count survives errors", func(t *testing.T) {
		eng := runtime.New(domain.Named("start"))
		eng.AddRule(domain.Named("start"), domain.Rule{Test: equals("ok"), Dest: domain.Self()})

		_, _, err := eng.Input("nope")
		require.Error(t, err)
		_, _, err = eng.Input("ok")
		require.NoError(t, err)
		assert.Equal(t, 2, eng.Count())
	})
}

func TestEngine_Unrecognized(t *testing.T) {
	eng := runtime.New(domain.Named("start"))
	eng.AddRule(domain.Named("start"), domain.Rule{Test: equals("go"), Dest: domain.ToName("end"), Tag: "to-end"})

	_, _, err := eng.Input("go")
	require.NoError(t, err)
	require.Equal(t, "end", eng.State().Name())

	_, _, err = eng.Input("anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnrecognized))

	var unrec *domain.UnrecognizedError
	require.ErrorAs(t, err, &unrec)
	assert.Equal(t, "anything", unrec.Input)
	assert.Equal(t, 2, unrec.Seq)
	assert.Equal(t, "end", unrec.State.Name())

	// The trace's last record must show the transition into the dead state.
	require.NotEmpty(t, unrec.Trace)
	last := unrec.Trace[len(unrec.Trace)-1]
	assert.Equal(t, "start", last.From.Name())
	assert.Equal(t, "end", last.To.Name())
	assert.Equal(t, "to-end", last.Tag)

	assert.Contains(t, err.Error(), "StateMachine traceback (most recent transition last):")
	assert.Contains(t, err.Error(), "'end' did not recognize 2: 'anything'")
}

func TestEngine_IgnoreUnrecognized(t *testing.T) {
	eng := runtime.New(domain.Named("start"), runtime.WithIgnoreUnrecognized())

	out, ok, err := eng.Input("anything")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)
	assert.Equal(t, "start", eng.State().Name())
}

func TestEngine_Checkpoint(t *testing.T) {
	limit := runtime.New(domain.Named("start"),
		runtime.WithCheckpoint(domain.Checkpoint{
			Kind: "input-limit",
			Check: func(_ string, tc domain.Context) string {
				if tc.Count > 2 {
					return "too many inputs"
				}
				return ""
			},
		}),
	)
	limit.AddRule(domain.Named("start"), domain.Rule{Test: always, Dest: domain.Self()})

	_, _, err := limit.Input("one")
	require.NoError(t, err)
	_, _, err = limit.Input("two")
	require.NoError(t, err)

	_, _, err = limit.Input("three")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCheckpoint))
	assert.False(t, errors.Is(err, domain.ErrUnrecognized), "checkpoint failure is not an unrecognized input")

	var cp *domain.CheckpointError
	require.ErrorAs(t, err, &cp)
	assert.Equal(t, "input-limit", cp.Kind)
	assert.Equal(t, "too many inputs", cp.Message)
	assert.Equal(t, 3, cp.Seq)
}

func TestEngine_ActionOverridesState(t *testing.T) {
	eng := runtime.New(domain.Named("outer"))
	eng.AddRule(domain.Named("outer"), domain.Rule{Test: equals("dive"), Dest: domain.ToName("inner"), Action: eng.PushStateAction()})
	eng.AddRule(domain.Named("inner"), domain.Rule{Test: equals("back"), Dest: domain.ToName("ignored"), Action: eng.PopStateAction()})

	_, _, err := eng.Input("dive")
	require.NoError(t, err)
	require.Equal(t, "inner", eng.State().Name())

	_, _, err = eng.Input("back")
	require.NoError(t, err)
	assert.Equal(t, "outer", eng.State().Name(), "pop-state must override the rule's destination")
}

func TestEngine_TraceRecordTestedCount(t *testing.T) {
	eng := runtime.New(domain.Named("start"))
	eng.AddRule(domain.Named("start"), domain.Rule{Test: equals("a"), Dest: domain.Self()})
	eng.AddRule(domain.Named("start"), domain.Rule{Test: equals("b"), Dest: domain.ToName("other")})
	eng.AddRule(domain.Wildcard, domain.Rule{Test: always, Dest: domain.Self()})

	_, _, err := eng.Input("b")
	require.NoError(t, err)
	recs := eng.Recent()
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Tested)

	_, _, err = eng.Input("zzz")
	require.NoError(t, err)
	recs = eng.Recent()
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[1].Tested, "no explicit rules in 'other', the wildcard is the first tested")
}
