package graphview

import (
	"math"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/style"
	"github.com/psidex/loopview/internal/theme"
)

const (
	DefaultViewportWidth  = 1280.0
	DefaultViewportHeight = 800.0
	DefaultPadding        = 50.0
	DefaultDimmedOpacity  = 0.1

	minZoom = 0.05
	maxZoom = 4.0
)

// Scene is everything a surface needs to draw the view.
type Scene struct {
	Nodes        []SceneNode `json:"nodes"`
	Edges        []SceneEdge `json:"edges"`
	Viewport     Viewport    `json:"viewport"`
	Theme        theme.Mode  `json:"theme"`
	SelectedLoop string      `json:"selectedLoop,omitempty"`
	Highlighted  bool        `json:"highlighted"`
}

type SceneNode struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	IsKey    bool            `json:"isKey"`
	Position layout.Position `json:"position"`
	Style    style.NodeStyle `json:"style"`
	Opacity  float64         `json:"opacity"`
}

type SceneEdge struct {
	ID       string                `json:"id"`
	Source   string                `json:"source"`
	Target   string                `json:"target"`
	Relation elements.RelationKind `json:"relation"`
	Style    style.EdgeStyle       `json:"style"`
	Opacity  float64               `json:"opacity"`
}

// Viewport maps model coordinates to the screen: screen = model*Zoom + Pan.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom"`
	PanX   float64 `json:"panX"`
	PanY   float64 `json:"panY"`
}

// Node looks a node up by id.
func (s Scene) Node(id string) (SceneNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return SceneNode{}, false
}

// Edge looks an edge up by id.
func (s Scene) Edge(id string) (SceneEdge, bool) {
	for _, e := range s.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return SceneEdge{}, false
}

// fit centres the bounding box of every node in a width x height viewport,
// leaving padding on each side.
func fit(nodes []*canvasNode, width, height, padding float64) Viewport {
	vp := Viewport{Width: width, Height: height, Zoom: 1, PanX: width / 2, PanY: height / 2}
	if len(nodes) == 0 {
		return vp
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		halfW, halfH := n.style.Width/2, n.style.Height/2
		minX = math.Min(minX, n.position.X-halfW)
		maxX = math.Max(maxX, n.position.X+halfW)
		minY = math.Min(minY, n.position.Y-halfH)
		maxY = math.Max(maxY, n.position.Y+halfH)
	}

	boxW, boxH := maxX-minX, maxY-minY
	availW, availH := math.Max(width-2*padding, 1), math.Max(height-2*padding, 1)

	zoom := maxZoom
	if boxW > 0 {
		zoom = math.Min(zoom, availW/boxW)
	}
	if boxH > 0 {
		zoom = math.Min(zoom, availH/boxH)
	}
	zoom = math.Max(minZoom, math.Min(maxZoom, zoom))
	if math.IsNaN(zoom) {
		zoom = 1
	}

	vp.Zoom = zoom
	vp.PanX = width/2 - zoom*(minX+maxX)/2
	vp.PanY = height/2 - zoom*(minY+maxY)/2
	return vp
}
