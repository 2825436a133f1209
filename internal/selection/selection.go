// Package selection tracks which loop the user picked from the loop list and
// broadcasts changes to every view on the page.
package selection

import (
	"sync"

	"github.com/psidex/loopview/internal/bus"
)

// Toggler holds the selected loop. Picking the selected loop again clears it.
type Toggler struct {
	mu       *sync.Mutex
	selected string
	bus      *bus.Bus
}

func NewToggler(b *bus.Bus) *Toggler {
	return &Toggler{mu: &sync.Mutex{}, bus: b}
}

// Selected returns the selected loop, empty when none is.
func (t *Toggler) Selected() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// Toggle selects loopID, or unselects it if it already was selected, and
// publishes the new selection.
func (t *Toggler) Toggle(loopID string) string {
	t.mu.Lock()
	if t.selected == loopID {
		t.selected = ""
	} else {
		t.selected = loopID
	}
	selected := t.selected
	t.mu.Unlock()

	t.publish(selected)
	return selected
}

// Unselect clears the selection and publishes it.
func (t *Toggler) Unselect() {
	t.mu.Lock()
	t.selected = ""
	t.mu.Unlock()
	t.publish("")
}

// Sync records a selection that arrived with a snapshot without broadcasting
// it, so a later Toggle of the same loop unselects.
func (t *Toggler) Sync(loopID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = loopID
}

func (t *Toggler) publish(loopID string) {
	if t.bus != nil {
		t.bus.Publish(bus.SelectionChanged{LoopID: loopID})
	}
}
