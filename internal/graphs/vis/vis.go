// Package vis renders scenes to a standalone vis-network HTML page.
package vis

import (
	"encoding/json"
	"fmt"
	htmlstd "html"
	"io"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphs"
	"github.com/psidex/loopview/internal/graphview"
)

// Vis defines a CliSceneProvider that renders to a HTML file drawing the scene
// with vis.js.
type Vis struct {
	graphs.LatestScene
	title string
}

var _ graphs.CliSceneProvider = (*Vis)(nil)

func NewVis(title string) *Vis {
	if title == "" {
		title = graphs.DefaultTitle
	}
	return &Vis{LatestScene: graphs.NewLatestScene(), title: title}
}

func (v *Vis) Extension() string { return ".html" }

func (v *Vis) RenderToFile(filename string) (string, error) {
	return graphs.WriteFile(v, filename)
}

func (v *Vis) Render(w io.Writer) error {
	scene := v.Scene()
	data, err := json.Marshal(toNetwork(scene))
	if err != nil {
		return err
	}

	background := "#FFFFFF"
	if len(scene.Nodes) > 0 {
		background = scene.Nodes[0].Style.BackgroundColor
	}

	_, err = fmt.Fprintf(w, html, htmlstd.EscapeString(v.title), background, data)
	return err
}

func toNetwork(scene graphview.Scene) network {
	out := network{
		Nodes: make([]node, 0, len(scene.Nodes)),
		Edges: make([]edge, 0, len(scene.Edges)),
	}

	for _, n := range scene.Nodes {
		out.Nodes = append(out.Nodes, node{
			ID:    n.ID,
			Label: n.Label,
			X:     n.Position.X,
			Y:     n.Position.Y,
			Color: color{
				Background: n.Style.BackgroundColor,
				Border:     n.Style.BorderColor,
			},
			BorderWidth: n.Style.BorderWidth,
			Font:        font{Color: n.Style.LabelColor, Bold: n.IsKey},
			Opacity:     n.Opacity,
		})
	}

	for _, e := range scene.Edges {
		out.Edges = append(out.Edges, edge{
			ID:     e.ID,
			From:   e.Source,
			To:     e.Target,
			Width:  e.Style.Width,
			Color:  edgeColor{Color: e.Style.LineColor, Opacity: e.Opacity},
			Dashes: e.Relation == elements.Inverse,
		})
	}
	return out
}
