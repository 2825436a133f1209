package graphview

import (
	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/style"
)

type canvasNode struct {
	node     elements.Node
	position layout.Position
	style    style.NodeStyle
	opacity  float64
}

type canvasEdge struct {
	edge    elements.Edge
	style   style.EdgeStyle
	opacity float64
}

// canvas is the live graph instance of one view: every element with its
// current position, style and opacity, in snapshot order.
type canvas struct {
	nodes []*canvasNode
	edges []*canvasEdge
	byID  map[string]*canvasNode
}

func newCanvas() *canvas {
	return &canvas{byID: map[string]*canvasNode{}}
}

// replace removes every element and adds elems. Later duplicates of an id are
// dropped.
func (c *canvas) replace(elems []elements.Element) {
	c.clear()

	seen := make(map[string]struct{}, len(elems))
	for _, el := range elems {
		id := el.ElementID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		switch v := el.(type) {
		case elements.Node:
			n := &canvasNode{node: v, opacity: 1}
			c.nodes = append(c.nodes, n)
			c.byID[v.ID] = n
		case elements.Edge:
			c.edges = append(c.edges, &canvasEdge{edge: v, opacity: 1})
		}
	}
}

func (c *canvas) clear() {
	c.nodes = nil
	c.edges = nil
	c.byID = map[string]*canvasNode{}
}

func (c *canvas) node(id string) (*canvasNode, bool) {
	n, ok := c.byID[id]
	return n, ok
}

func (c *canvas) hasEdge(id string) bool {
	for _, e := range c.edges {
		if e.edge.ID == id {
			return true
		}
	}
	return false
}

func (c *canvas) edgeList() []elements.Edge {
	edges := make([]elements.Edge, 0, len(c.edges))
	for _, e := range c.edges {
		edges = append(edges, e.edge)
	}
	return edges
}

func (c *canvas) positions() map[string]layout.Position {
	positions := make(map[string]layout.Position, len(c.nodes))
	for _, n := range c.nodes {
		positions[n.node.ID] = n.position
	}
	return positions
}
