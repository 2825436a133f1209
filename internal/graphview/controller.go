// Package graphview owns the live graph of one mounted view. It rebuilds the
// graph from every snapshot, places nodes from the saved layout or an
// automatic arrangement, keeps styles in step with the theme and opacities in
// step with the selected loop, and turns taps into semantic events.
//
// A Controller is not safe for concurrent use. Every call for one view must
// come from the same event loop, see bus.Loop.
package graphview

import (
	"log/slog"
	"math"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/highlight"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/lib"
	"github.com/psidex/loopview/internal/style"
	"github.com/psidex/loopview/internal/theme"
)

type Options struct {
	// Layout supplies and receives saved positions. Nil disables saving.
	Layout *layout.Store
	// Theme defaults to a fixed Normal mode.
	Theme ThemeSource
	// Emitter and Surface default to discarding everything.
	Emitter Emitter
	Surface Surface
	// Scheduler defaults to running deferred work immediately.
	Scheduler Scheduler
	Logger    *slog.Logger

	Force layout.Settings

	// Viewport size and padding used when fitting, zero means the defaults.
	ViewportWidth  float64
	ViewportHeight float64
	Padding        float64

	// DimmedOpacity is applied to elements outside the highlighted loop and
	// is clamped to [0, 1]. Nil means DefaultDimmedOpacity.
	DimmedOpacity *float64
}

type lifecycle int

const (
	uninitialized lifecycle = iota
	ready
	destroyed
)

type Controller struct {
	opts   Options
	dimmed float64
	logger *slog.Logger

	state    lifecycle
	canvas   *canvas
	loops    []elements.Loop
	selected string
	result   highlight.Result
	mode     theme.Mode
	viewport Viewport

	unsubscribe []func()
}

func New(opts Options) *Controller {
	if opts.Theme == nil {
		opts.Theme = fixedTheme(theme.Normal)
	}
	if opts.Emitter == nil {
		opts.Emitter = nopEmitter{}
	}
	if opts.Surface == nil {
		opts.Surface = nopSurface{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = immediateScheduler{}
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultPadding
	}
	dimmed := DefaultDimmedOpacity
	if opts.DimmedOpacity != nil && !math.IsNaN(*opts.DimmedOpacity) {
		dimmed = math.Max(0, math.Min(1, *opts.DimmedOpacity))
	}

	return &Controller{
		opts:   opts,
		dimmed: dimmed,
		logger: lib.OrDiscard(opts.Logger),
	}
}

// Ready reports whether the view is mounted and not yet destroyed.
func (c *Controller) Ready() bool {
	return c.state == ready
}

// Mount builds the graph from the initial snapshot and paints it. Only the
// first call has any effect.
func (c *Controller) Mount(snap elements.Snapshot) {
	if c.state != uninitialized {
		c.logger.Debug("ignoring mount", "state", c.state)
		return
	}
	c.state = ready
	c.canvas = newCanvas()
	c.loops = snap.Loops
	c.selected = snap.SelectedLoop
	c.rebuild(snap.Elements)
}

// ApplySnapshot replaces every element with those in snap. The selection
// carried by the snapshot replaces the current one only if it has one.
// Every node with a saved position takes it, whether or not it was in the
// previous snapshot; the rest are arranged automatically.
func (c *Controller) ApplySnapshot(snap elements.Snapshot) {
	if c.state != ready {
		return
	}
	c.loops = snap.Loops
	if snap.HasSelection {
		c.selected = snap.SelectedLoop
	}
	c.rebuild(snap.Elements)
}

func (c *Controller) rebuild(elems []elements.Element) {
	c.canvas.replace(elems)
	c.restyle(c.opts.Theme.Mode())
	c.arrange()
	c.applyHighlight()
	c.viewport = fit(c.canvas.nodes, c.opts.ViewportWidth, c.opts.ViewportHeight, c.opts.Padding)
	c.paint()
}

// arrange uses saved positions where there are any and the automatic
// arrangement for every other node.
func (c *Controller) arrange() {
	saved, ok := c.opts.Layout.Load()
	if !ok {
		saved = nil
	}

	missing := false
	for _, n := range c.canvas.nodes {
		if _, ok := saved[n.node.ID]; !ok {
			missing = true
			break
		}
	}

	var auto map[string]layout.Position
	if missing {
		boxes := make([]layout.Box, 0, len(c.canvas.nodes))
		for _, n := range c.canvas.nodes {
			boxes = append(boxes, layout.Box{ID: n.node.ID, Width: n.style.Width, Height: n.style.Height})
		}
		links := make([]layout.Link, 0, len(c.canvas.edges))
		for _, e := range c.canvas.edges {
			links = append(links, layout.Link{Source: e.edge.Source, Target: e.edge.Target})
		}
		auto = layout.Arrange(boxes, links, c.opts.Force)
	}

	for _, n := range c.canvas.nodes {
		if p, ok := saved[n.node.ID]; ok {
			n.position = p
		} else {
			n.position = auto[n.node.ID]
		}
	}
	c.logger.Debug("arranged nodes", "nodes", len(c.canvas.nodes), "saved", len(saved), "auto", len(auto))
}

func (c *Controller) restyle(mode theme.Mode) {
	c.mode = mode
	for _, n := range c.canvas.nodes {
		n.style = style.ResolveNode(n.node, mode)
	}
	for _, e := range c.canvas.edges {
		e.style = style.ResolveEdge(e.edge, mode)
	}
}

func (c *Controller) applyHighlight() {
	c.result = highlight.Compute(c.selected, c.loops, c.canvas.edgeList())
	for _, n := range c.canvas.nodes {
		n.opacity = c.opacity(c.result.Of(n.node.ID))
	}
	for _, e := range c.canvas.edges {
		e.opacity = c.opacity(c.result.Of(e.edge.ID))
	}
}

func (c *Controller) opacity(s highlight.State) float64 {
	if s == highlight.Dimmed {
		return c.dimmed
	}
	return 1
}

func (c *Controller) paint() {
	c.opts.Surface.Paint(c.Scene())
}

// Resize refits the viewport to a new plot size and repaints. Sizes that are
// not positive keep the current dimension.
func (c *Controller) Resize(width, height float64) {
	if c.state != ready {
		return
	}
	if width > 0 {
		c.opts.ViewportWidth = width
	}
	if height > 0 {
		c.opts.ViewportHeight = height
	}
	c.viewport = fit(c.canvas.nodes, c.opts.ViewportWidth, c.opts.ViewportHeight, c.opts.Padding)
	c.paint()
}

// DragEnd moves a node and saves the position of every node.
func (c *Controller) DragEnd(nodeID string, p layout.Position) {
	if c.state != ready {
		return
	}
	n, ok := c.canvas.node(nodeID)
	if !ok {
		c.logger.Debug("drag of unknown node", "id", nodeID)
		return
	}
	n.position = p
	c.opts.Layout.Save(c.canvas.positions())
}

// TapNode emits NodeClicked for a node on the canvas.
func (c *Controller) TapNode(id string) {
	if c.state != ready {
		return
	}
	if _, ok := c.canvas.node(id); !ok {
		c.logger.Debug("tap on unknown node", "id", id)
		return
	}
	c.opts.Emitter.PushEvent(NodeClicked{ID: id})
}

// TapEdge emits EdgeClicked to target, or to DefaultEdgeTarget if target is
// empty.
func (c *Controller) TapEdge(id, target string) {
	if c.state != ready {
		return
	}
	if !c.canvas.hasEdge(id) {
		c.logger.Debug("tap on unknown edge", "id", id)
		return
	}
	if target == "" {
		target = DefaultEdgeTarget
	}
	c.opts.Emitter.PushEventTo(target, EdgeClicked{ID: id})
}

// Handle reacts to a broadcast. A theme change is picked up one turn later so
// whatever flips the flag for the same broadcast has committed.
func (c *Controller) Handle(m bus.Message) {
	if c.state != ready {
		return
	}
	switch msg := m.(type) {
	case bus.SelectionChanged:
		c.selected = msg.LoopID
		c.applyHighlight()
		c.paint()
	case bus.ThemeChanged:
		c.opts.Scheduler.Defer(c.refreshStyles)
	}
}

func (c *Controller) refreshStyles() {
	if c.state != ready {
		return
	}
	c.restyle(c.opts.Theme.Mode())
	c.paint()
}

// Listen subscribes the controller to b until Destroy. Deliveries go through
// post, normally the Post method of the view's event loop; a nil post handles
// them on the publishing goroutine.
func (c *Controller) Listen(b *bus.Bus, post func(func())) {
	if c.state == destroyed || b == nil {
		return
	}
	unsubscribe := b.Subscribe(func(m bus.Message) {
		if post == nil {
			c.Handle(m)
			return
		}
		post(func() { c.Handle(m) })
	})
	c.unsubscribe = append(c.unsubscribe, unsubscribe)
}

// Destroy releases the graph and every subscription. The controller ignores
// all calls afterwards.
func (c *Controller) Destroy() {
	if c.state == destroyed {
		return
	}
	c.state = destroyed
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil
	if c.canvas != nil {
		c.canvas.clear()
		c.canvas = nil
	}
	c.loops = nil
	c.result = highlight.Result{}
}

// Scene is a copy of what is currently on the canvas. It is empty unless the
// controller is ready.
func (c *Controller) Scene() Scene {
	if c.state != ready {
		return Scene{}
	}

	s := Scene{
		Nodes:        make([]SceneNode, 0, len(c.canvas.nodes)),
		Edges:        make([]SceneEdge, 0, len(c.canvas.edges)),
		Viewport:     c.viewport,
		Theme:        c.mode,
		SelectedLoop: c.result.LoopID(),
		Highlighted:  c.result.Active(),
	}
	for _, n := range c.canvas.nodes {
		s.Nodes = append(s.Nodes, SceneNode{
			ID:       n.node.ID,
			Label:    n.node.Label,
			IsKey:    n.node.IsKeyVariable,
			Position: n.position,
			Style:    n.style,
			Opacity:  n.opacity,
		})
	}
	for _, e := range c.canvas.edges {
		s.Edges = append(s.Edges, SceneEdge{
			ID:       e.edge.ID,
			Source:   e.edge.Source,
			Target:   e.edge.Target,
			Relation: e.edge.Relation,
			Style:    e.style,
			Opacity:  e.opacity,
		})
	}
	return s
}

// Selected is the current selection as last received, which may name a loop
// that does not exist.
func (c *Controller) Selected() string {
	return c.selected
}
