package graphview

import "github.com/psidex/loopview/internal/theme"

// DefaultEdgeTarget receives EdgeClicked when a tap names no target.
const DefaultEdgeTarget = "relationship-table"

// Event is a semantic event sent to a collaborator outside the view.
type Event interface {
	Name() string
	ElementID() string
}

// NodeClicked tells the server-facing collaborator a node was tapped.
type NodeClicked struct {
	ID string `json:"id"`
}

// EdgeClicked tells a named collaborator, such as the relationship table, that
// an edge was tapped.
type EdgeClicked struct {
	ID string `json:"id"`
}

func (NodeClicked) Name() string        { return "node_clicked" }
func (e NodeClicked) ElementID() string { return e.ID }
func (EdgeClicked) Name() string        { return "edge_clicked" }
func (e EdgeClicked) ElementID() string { return e.ID }

// Emitter delivers semantic events.
type Emitter interface {
	PushEvent(ev Event)
	PushEventTo(target string, ev Event)
}

// Surface draws a scene. It is called after every change that alters what is
// on screen.
type Surface interface {
	Paint(Scene)
}

// Scheduler runs fn after the event currently being handled, and after
// anything already queued behind it.
type Scheduler interface {
	Defer(fn func())
}

// ThemeSource is the process-wide theme flag.
type ThemeSource interface {
	Mode() theme.Mode
}

type nopEmitter struct{}

func (nopEmitter) PushEvent(Event)           {}
func (nopEmitter) PushEventTo(string, Event) {}

type nopSurface struct{}

func (nopSurface) Paint(Scene) {}

type immediateScheduler struct{}

func (immediateScheduler) Defer(fn func()) { fn() }

type fixedTheme theme.Mode

func (f fixedTheme) Mode() theme.Mode { return theme.Mode(f) }
