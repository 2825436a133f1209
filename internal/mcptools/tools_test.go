package mcptools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/kvstore"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/theme"
)

const testElements = `[
	{"group": "nodes", "data": {"id": "a", "label": "Alpha", "isKey": true}},
	{"group": "nodes", "data": {"id": "b", "label": "Beta"}},
	{"group": "nodes", "data": {"id": "c", "label": "Gamma"}},
	{"group": "edges", "data": {"id": "e1", "source": "a", "target": "b", "relation": "direct"}},
	{"group": "edges", "data": {"id": "e2", "source": "b", "target": "c", "relation": "inverse"}}
]`

const testLoops = `[{"id": "L1", "edges": ["e1"]}]`

func setupServer(t *testing.T, deps Deps) *mcptest.Server {
	t.Helper()
	srv := mcptest.NewUnstartedServer(t)
	srv.AddTools(Tools(deps)...)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)
	return srv
}

func newDeps() Deps {
	kv := kvstore.NewMemory()
	return Deps{
		Layout: layout.NewStore(kv, nil),
		Theme:  theme.NewFlag(kv, nil),
		Force:  layout.DefaultSettings(),
	}
}

func call(t *testing.T, srv *mcptest.Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := srv.Client().CallTool(context.Background(), req)
	require.NoError(t, err)
	return result
}

func text(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decode(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError, text(result))
	require.NoError(t, json.Unmarshal([]byte(text(result)), v))
}

func TestComputeVisibility(t *testing.T) {
	srv := setupServer(t, newDeps())

	var got visibility
	decode(t, call(t, srv, "compute_visibility", map[string]any{
		"elements":      testElements,
		"loops":         testLoops,
		"selected_loop": "L1",
	}), &got)

	assert.True(t, got.Highlighted)
	assert.Equal(t, "L1", got.Loop)
	assert.Equal(t, map[string]string{
		"a": "visible", "b": "visible", "e1": "visible",
		"c": "dimmed", "e2": "dimmed",
	}, got.States)

	got = visibility{}
	decode(t, call(t, srv, "compute_visibility", map[string]any{
		"elements": testElements,
		"loops":    testLoops,
	}), &got)
	assert.False(t, got.Highlighted)
	for id, state := range got.States {
		assert.Equal(t, "visible", state, id)
	}
}

func TestComputeVisibilityRejectsBadInput(t *testing.T) {
	srv := setupServer(t, newDeps())

	result := call(t, srv, "compute_visibility", map[string]any{"elements": testElements})
	assert.True(t, result.IsError)

	result = call(t, srv, "compute_visibility", map[string]any{"elements": "{", "loops": testLoops})
	assert.True(t, result.IsError)
}

func TestResolveStyles(t *testing.T) {
	deps := newDeps()
	srv := setupServer(t, deps)

	var got styles
	decode(t, call(t, srv, "resolve_styles", map[string]any{"elements": testElements}), &got)
	assert.Equal(t, theme.Normal, got.Theme)
	assert.Len(t, got.Nodes, 3)
	assert.NotNil(t, got.Nodes["a"].Icon)
	assert.Nil(t, got.Nodes["b"].Icon)
	assert.Equal(t, "#C2410C", got.Edges["e1"].LineColor)
	assert.Equal(t, "#0284C7", got.Edges["e2"].LineColor)

	got = styles{}
	decode(t, call(t, srv, "resolve_styles", map[string]any{
		"elements": testElements,
		"theme":    "high_contrast",
	}), &got)
	assert.Equal(t, theme.HighContrast, got.Theme)
	assert.Equal(t, "#7C2D12", got.Edges["e1"].LineColor)

	result := call(t, srv, "resolve_styles", map[string]any{"elements": testElements, "theme": "sepia"})
	assert.True(t, result.IsError)
}

func TestArrangeUsesSavedLayout(t *testing.T) {
	deps := newDeps()
	deps.Layout.Save(map[string]layout.Position{"a": {X: 5, Y: 6}})
	srv := setupServer(t, deps)

	var got arrangement
	decode(t, call(t, srv, "arrange", map[string]any{"elements": testElements}), &got)
	assert.Len(t, got.Positions, 3)
	assert.Equal(t, layout.Position{X: 5, Y: 6}, got.Positions["a"])

	var fresh arrangement
	decode(t, call(t, srv, "arrange", map[string]any{"elements": testElements, "use_saved": false}), &fresh)
	assert.NotEqual(t, layout.Position{X: 5, Y: 6}, fresh.Positions["a"])

	// Arranging never writes the layout.
	saved, ok := deps.Layout.Load()
	require.True(t, ok)
	assert.Len(t, saved, 1)
}

func TestGetAndClearLayout(t *testing.T) {
	deps := newDeps()
	srv := setupServer(t, deps)

	var got savedLayout
	decode(t, call(t, srv, "get_layout", nil), &got)
	assert.False(t, got.Saved)
	assert.Empty(t, got.Positions)

	deps.Layout.Save(map[string]layout.Position{"a": {X: 1, Y: 2}})
	got = savedLayout{}
	decode(t, call(t, srv, "get_layout", nil), &got)
	assert.True(t, got.Saved)
	assert.Equal(t, map[string]layout.Position{"a": {X: 1, Y: 2}}, got.Positions)

	result := call(t, srv, "clear_layout", nil)
	assert.False(t, result.IsError)
	_, ok := deps.Layout.Load()
	assert.False(t, ok)
}

func TestToggleTheme(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		deps := newDeps()
		srv := setupServer(t, deps)

		var got themeState
		decode(t, call(t, srv, "toggle_theme", nil), &got)
		assert.Equal(t, theme.HighContrast, got.Theme)
		assert.Equal(t, theme.HighContrast, deps.Theme.Mode())
	})

	t.Run("through the bus", func(t *testing.T) {
		deps := newDeps()
		deps.Bus = bus.New()
		deps.Theme.Attach(deps.Bus)

		seen := 0
		deps.Bus.Subscribe(func(m bus.Message) {
			if _, ok := m.(bus.ThemeChanged); ok {
				seen++
			}
		})
		srv := setupServer(t, deps)

		var got themeState
		decode(t, call(t, srv, "toggle_theme", nil), &got)
		assert.Equal(t, theme.HighContrast, got.Theme)
		assert.Equal(t, 1, seen)
	})
}
