// Package elements holds the causal loop diagram data the graph view renders:
// variables (nodes), influence relationships (edges), loops over those
// relationships, and the snapshots that carry them.
package elements

// RelationKind is the polarity of an influence relationship.
type RelationKind string

const (
	Direct  RelationKind = "direct"
	Inverse RelationKind = "inverse"
)

// Element is either a Node or an Edge. Identity is the ID, unique within a
// snapshot.
type Element interface {
	ElementID() string
	element()
}

// Node is a variable in the diagram.
type Node struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	IsKeyVariable bool   `json:"isKey"`
}

// Edge is a directed influence relationship. Source and Target must name nodes
// present in the same snapshot; this is not checked here.
type Edge struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	Target   string       `json:"target"`
	Relation RelationKind `json:"relation"`
}

func (n Node) ElementID() string { return n.ID }
func (e Edge) ElementID() string { return e.ID }

func (Node) element() {}
func (Edge) element() {}

// Loop is a named grouping of edge ids. Node membership is derived from the
// edges it touches.
type Loop struct {
	ID      string   `json:"id"`
	EdgeIDs []string `json:"edges"`
}

// Snapshot is a complete description of everything to render. SelectedLoop is
// only meaningful when HasSelection is set; an empty SelectedLoop with
// HasSelection means "unselect".
type Snapshot struct {
	Elements     []Element
	Loops        []Loop
	SelectedLoop string
	HasSelection bool
}

// Split separates elements into nodes and edges, preserving order.
func Split(elems []Element) (nodes []Node, edges []Edge) {
	for _, el := range elems {
		switch v := el.(type) {
		case Node:
			nodes = append(nodes, v)
		case Edge:
			edges = append(edges, v)
		}
	}
	return nodes, edges
}

// Nodes returns just the nodes of the snapshot.
func (s Snapshot) Nodes() []Node {
	nodes, _ := Split(s.Elements)
	return nodes
}

// Edges returns just the edges of the snapshot.
func (s Snapshot) Edges() []Edge {
	_, edges := Split(s.Elements)
	return edges
}
