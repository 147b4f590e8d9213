package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventhouse/statemachine/internal/compiler"
	"github.com/inventhouse/statemachine/internal/presentation/graph"
	"github.com/inventhouse/statemachine/pkg/registry"
)

func TestGenerateMermaid(t *testing.T) {
	compiled, err := compiler.CompileSource(nil, []string{
		"/start/eq/go/work/p//begin",
		"/work/t//start",
		"/work/eq/again",
		"/*/eq/quit/done",
	}, nil, registry.Builtin())
	require.NoError(t, err)

	out := graph.GenerateMermaid("start", compiled.Bound)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `start(("start"))`, "start state is a circle")
	assert.Contains(t, out, `work["work"]`)
	assert.Contains(t, out, `__any__(["any state"])`)
	assert.Contains(t, out, `start -- "begin" --> work`, "tag labels the edge")
	assert.Contains(t, out, `work -- "eq(again)" --> work`, "untagged self-transition labeled with its test")
	assert.Contains(t, out, `__any__ -. "eq(quit)" .-> done`, "wildcard edges are dashed")

	assert.Equal(t, 1, strings.Count(out, `work["work"]`), "each state declared once")
}

func TestGenerateMermaid_SanitizesIDs(t *testing.T) {
	compiled, err := compiler.CompileSource(nil, []string{
		"/front door/t//back-room",
	}, nil, registry.Builtin())
	require.NoError(t, err)

	out := graph.GenerateMermaid("front door", compiled.Bound)
	assert.Contains(t, out, `front_door(("front door"))`)
	assert.Contains(t, out, `front_door -- "t" --> back_room`)
}
