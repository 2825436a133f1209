package vis

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphview"
)

func TestVisRenderToFile(t *testing.T) {
	v := NewVis("Loops <draft>")
	c := graphview.New(graphview.Options{Surface: v})
	c.Mount(elements.Snapshot{
		Elements: []elements.Element{
			elements.Node{ID: "A", Label: "Births"},
			elements.Node{ID: "B", Label: "</script>Population"},
			elements.Edge{ID: "e1", Source: "A", Target: "B", Relation: elements.Inverse},
		},
	})

	path, err := v.RenderToFile(filepath.Join(t.TempDir(), "loops"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".html"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(content)

	assert.Contains(t, page, "Births")
	assert.Contains(t, page, `\u003c/script\u003ePopulation`)
	assert.Equal(t, 2, strings.Count(page, "</script>"))
	assert.Contains(t, page, "<title>Loops &lt;draft&gt;</title>")
	assert.Contains(t, page, `"dashes":true`)
}

func TestToNetwork(t *testing.T) {
	scene := graphview.Scene{
		Nodes: []graphview.SceneNode{{ID: "A", Label: "Births", IsKey: true, Opacity: 0.1}},
		Edges: []graphview.SceneEdge{{ID: "e1", Source: "A", Target: "A", Relation: elements.Direct}},
	}

	n := toNetwork(scene)
	require.Len(t, n.Nodes, 1)
	assert.True(t, n.Nodes[0].Font.Bold)
	assert.Equal(t, 0.1, n.Nodes[0].Opacity)
	assert.False(t, n.Edges[0].Dashes)

	buf := &bytes.Buffer{}
	assert.NoError(t, NewVis("").Render(buf))
	assert.Contains(t, buf.String(), "<title>loopview</title>")
}
