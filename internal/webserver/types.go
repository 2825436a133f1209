package webserver

import (
	"encoding/json"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphview"
)

// Client message types.
const (
	msgMount              = "mount"
	msgSnapshot           = "snapshot"
	msgTap                = "tap"
	msgDragEnd            = "dragend"
	msgToggleLoop         = "toggle-loop"
	msgUnselectLoop       = "unselect-loop"
	msgToggleHighContrast = "toggle-high-contrast"
	msgResize             = "resize"
	msgSidebarDragStart   = "sidebar-drag-start"
	msgSidebarDrag        = "sidebar-drag"
	msgSidebarDragEnd     = "sidebar-drag-end"
)

// clientMessage is every field any client message can carry.
type clientMessage struct {
	Type string `json:"type"`

	Elements     json.RawMessage `json:"elements"`
	Loops        json.RawMessage `json:"loops"`
	SelectedLoop *string         `json:"selectedLoop"`

	Kind   string  `json:"kind"`
	ID     string  `json:"id"`
	Target string  `json:"target"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`

	LoopID string `json:"loop_id"`

	// Window is the browser window width, Height the plot height.
	Window float64 `json:"window"`
	Height float64 `json:"height"`
}

// payload unwraps a collection that may arrive either as JSON or as a JSON
// string holding JSON, the way it sits in a data attribute.
func payload(raw json.RawMessage) []byte {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return []byte(s)
		}
	}
	return raw
}

func (m clientMessage) snapshot() elements.Snapshot {
	snap := elements.Snapshot{
		Elements: elements.ParseElements(payload(m.Elements)),
		Loops:    elements.ParseLoops(payload(m.Loops)),
	}
	if m.SelectedLoop != nil {
		snap.SelectedLoop = *m.SelectedLoop
		snap.HasSelection = true
	}
	return snap
}

type sceneFrame struct {
	Type string          `json:"type"`
	Data graphview.Scene `json:"data"`
}

type eventFrame struct {
	Type   string      `json:"type"`
	Event  string      `json:"event"`
	Target string      `json:"target,omitempty"`
	Data   eventTarget `json:"data"`
}

type eventTarget struct {
	ID string `json:"id"`
}

type sidebarFrame struct {
	Type string      `json:"type"`
	Data sidebarSize `json:"data"`
}

type sidebarSize struct {
	Width     float64 `json:"width"`
	PlotWidth float64 `json:"plotWidth"`
}

func newSidebarFrame(width, plotWidth float64) sidebarFrame {
	return sidebarFrame{Type: "sidebar", Data: sidebarSize{Width: width, PlotWidth: plotWidth}}
}

func newSceneFrame(s graphview.Scene) sceneFrame {
	return sceneFrame{Type: "scene", Data: s}
}

func newEventFrame(target string, ev graphview.Event) eventFrame {
	return eventFrame{Type: "event", Event: ev.Name(), Target: target, Data: eventTarget{ID: ev.ElementID()}}
}
