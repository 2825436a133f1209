// Package highlight decides which elements stay visible while a loop is
// selected.
package highlight

import (
	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/lib"
)

// State is the visibility of one element.
type State int

const (
	Visible State = iota
	Dimmed
)

func (s State) String() string {
	if s == Dimmed {
		return "dimmed"
	}
	return "visible"
}

// Result is the outcome of Compute. The zero Result has no active loop and
// reports every element as Visible.
type Result struct {
	loopID  string
	visible lib.Set[string]
}

// Compute finds the loop named selected and marks its member edges that are
// present in edges, plus their endpoints, Visible. Everything else is Dimmed.
// An empty selection, or one naming no loop, gives the zero Result.
//
// Runs in time linear in the number of edges, loops and loop members.
func Compute(selected string, loops []elements.Loop, edges []elements.Edge) Result {
	if selected == "" {
		return Result{}
	}

	var loop *elements.Loop
	for i := range loops {
		if loops[i].ID == selected {
			loop = &loops[i]
			break
		}
	}
	if loop == nil {
		return Result{}
	}

	members := lib.NewSet(loop.EdgeIDs...)
	visible := lib.NewSet[string]()
	for _, e := range edges {
		if !members.Contains(e.ID) {
			continue
		}
		visible.Add(e.ID)
		visible.Add(e.Source)
		visible.Add(e.Target)
	}

	return Result{loopID: loop.ID, visible: visible}
}

// Active reports whether a loop is highlighted.
func (r Result) Active() bool {
	return r.visible != nil
}

// LoopID is the highlighted loop, empty when none is.
func (r Result) LoopID() string {
	return r.loopID
}

func (r Result) Of(id string) State {
	if !r.Active() || r.visible.Contains(id) {
		return Visible
	}
	return Dimmed
}

// Apply returns the state of every id.
func (r Result) Apply(ids []string) map[string]State {
	states := make(map[string]State, len(ids))
	for _, id := range ids {
		states[id] = r.Of(id)
	}
	return states
}
