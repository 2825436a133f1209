package graphs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphview"
)

func paint(t *testing.T, s graphview.Surface) {
	t.Helper()
	c := graphview.New(graphview.Options{Surface: s})
	c.Mount(elements.Snapshot{
		Elements: []elements.Element{
			elements.Node{ID: "A", Label: "Births"},
			elements.Node{ID: "B", Label: "Population", IsKeyVariable: true},
			elements.Node{ID: "C", Label: "Births"},
			elements.Edge{ID: "e1", Source: "A", Target: "B", Relation: elements.Direct},
			elements.Edge{ID: "e2", Source: "B", Target: "C", Relation: elements.Inverse},
			elements.Edge{ID: "e3", Source: "B", Target: "A", Relation: elements.Direct},
		},
		Loops:        []elements.Loop{{ID: "L1", EdgeIDs: []string{"e1"}}},
		SelectedLoop: "L1",
	})
	require.True(t, c.Ready())
}

func TestEChartsRenderToFile(t *testing.T) {
	e := NewECharts("")
	paint(t, e)

	path, err := e.RenderToFile(filepath.Join(t.TempDir(), "loops"))
	require.NoError(t, err)
	assert.Equal(t, ".html", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Births")
	assert.Contains(t, string(content), "Population")
	assert.Contains(t, string(content), "Births (C)")
	assert.Contains(t, string(content), DefaultTitle)
}

func TestChartDataUniqueNames(t *testing.T) {
	e := NewECharts("t")
	paint(t, e)

	nodes, links := chartData(e.Scene())
	require.Len(t, nodes, 3)
	assert.Equal(t, "Births", nodes[0].Name)
	assert.Equal(t, "Births (C)", nodes[2].Name)
	assert.Len(t, links, 3)
	assert.Equal(t, "Births (C)", links[1].Target)
}

func TestAdjacency(t *testing.T) {
	a := NewAdjacency()
	paint(t, a)

	buf := &bytes.Buffer{}
	require.NoError(t, a.Render(buf))

	var got map[string]influences
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]influences{
		"A": {Direct: []string{"B"}, Inverse: []string{}},
		"B": {Direct: []string{"A"}, Inverse: []string{"C"}},
		"C": {Direct: []string{}, Inverse: []string{}},
	}, got)

	path, err := a.RenderToFile(filepath.Join(t.TempDir(), "adjacency"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteFileBadDirectory(t *testing.T) {
	_, err := NewAdjacency().RenderToFile(filepath.Join(t.TempDir(), "missing", "x"))
	assert.Error(t, err)
}

func TestEmptyScene(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NoError(t, NewECharts("empty").Render(buf))
	assert.NoError(t, NewAdjacency().Render(buf))
}
