// Package graphology renders scenes as graphology serialized JSON, ready for
// sigma.js or any other graphology consumer.
package graphology

import (
	"encoding/json"
	"io"

	"github.com/psidex/loopview/internal/graphs"
	"github.com/psidex/loopview/internal/graphview"
)

// nodeSizeScale maps a node's rendered width to a sigma node size.
const nodeSizeScale = 1.0 / 30

// Graphology defines a CliSceneProvider that renders Graphology data to a JSON
// file. Sigma's y axis points up, so y coordinates are flipped.
type Graphology struct {
	graphs.LatestScene
}

var _ graphs.CliSceneProvider = (*Graphology)(nil)

func NewGraphology() *Graphology {
	return &Graphology{LatestScene: graphs.NewLatestScene()}
}

func (g *Graphology) Extension() string { return ".json" }

func (g *Graphology) RenderToFile(filename string) (string, error) {
	return graphs.WriteFile(g, filename)
}

func (g *Graphology) Render(w io.Writer) error {
	marshalled, err := json.Marshal(serialize(g.Scene()))
	if err != nil {
		return err
	}
	_, err = w.Write(marshalled)
	return err
}

func serialize(scene graphview.Scene) SerializedGraph {
	graph := SerializedGraph{
		Attributes: map[string]string{"theme": scene.Theme.String()},
		Options:    GraphOptions{Type: "directed", Multi: true, AllowSelfLoops: true},
		Nodes:      make([]Node, 0, len(scene.Nodes)),
		Edges:      make([]Edge, 0, len(scene.Edges)),
	}
	if scene.SelectedLoop != "" {
		graph.Attributes["selectedLoop"] = scene.SelectedLoop
	}

	for _, n := range scene.Nodes {
		graph.Nodes = append(graph.Nodes, Node{
			Key: n.ID,
			Attributes: NodeAttributes{
				X:       n.Position.X,
				Y:       -n.Position.Y,
				Size:    n.Style.Width * nodeSizeScale,
				Label:   n.Label,
				Color:   n.Style.BorderColor,
				Opacity: n.Opacity,
				IsKey:   n.IsKey,
			},
		})
	}

	for _, e := range scene.Edges {
		graph.Edges = append(graph.Edges, Edge{
			Key:    e.ID,
			Source: e.Source,
			Target: e.Target,
			Attributes: EdgeAttributes{
				Size:     e.Style.Width,
				Color:    e.Style.LineColor,
				Opacity:  e.Opacity,
				Relation: string(e.Relation),
				Type:     "arrow",
			},
		})
	}
	return graph
}
