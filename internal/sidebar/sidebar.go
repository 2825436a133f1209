// Package sidebar sizes the resizable panel next to the graph.
package sidebar

import "math"

const (
	MinWidth         = 250.0
	MaxWindowPortion = 0.8
)

// ClampWidth bounds a requested panel width to [MinWidth, 80% of the window].
// On windows too narrow for both bounds the minimum wins.
func ClampWidth(requested, windowWidth float64) float64 {
	if math.IsNaN(requested) {
		requested = MinWidth
	}
	maxWidth := windowWidth * MaxWindowPortion
	return math.Max(MinWidth, math.Min(maxWidth, requested))
}

// Drag is one resize gesture. The handle sits on the left edge of the panel,
// so moving the pointer left widens it.
type Drag struct {
	StartWidth float64
	StartX     float64
}

// WidthAt is the clamped panel width with the pointer at x.
func (d Drag) WidthAt(x, windowWidth float64) float64 {
	return ClampWidth(d.StartWidth+(d.StartX-x), windowWidth)
}

// PlotWidth is what remains of the window for the graph.
func PlotWidth(sidebarWidth, windowWidth float64) float64 {
	return math.Max(0, windowWidth-sidebarWidth)
}

// DefaultWidth is the panel width before any resize.
const DefaultWidth = 300.0

// Panel tracks the width of one view's panel across resize gestures. It is
// not safe for concurrent use.
type Panel struct {
	width float64
	drag  *Drag
}

func NewPanel() *Panel {
	return &Panel{width: DefaultWidth}
}

func (p *Panel) Width() float64 {
	return p.width
}

// Dragging reports whether a gesture is in progress.
func (p *Panel) Dragging() bool {
	return p.drag != nil
}

// Begin starts a gesture with the pointer at x.
func (p *Panel) Begin(x float64) {
	p.drag = &Drag{StartWidth: p.width, StartX: x}
}

// Move resizes the panel for the pointer at x. It reports false when no
// gesture is in progress.
func (p *Panel) Move(x, windowWidth float64) bool {
	if p.drag == nil {
		return false
	}
	p.width = p.drag.WidthAt(x, windowWidth)
	return true
}

// End finishes the gesture, the width stays where it was left.
func (p *Panel) End() {
	p.drag = nil
}

// Fit clamps the current width to a resized window.
func (p *Panel) Fit(windowWidth float64) {
	p.width = ClampWidth(p.width, windowWidth)
}
