// Package bus carries the broadcasts shared between the regions of a page
// (loop selection, theme toggles) and serializes the events of a single mounted
// graph view.
package bus

// Message is one of the closed set of broadcast messages below.
type Message interface {
	message()
}

// SelectionChanged reports the newly selected loop. An empty LoopID means no
// loop is selected.
type SelectionChanged struct {
	LoopID string
}

// ThemeChanged reports that the theme was toggled. Receivers re-read the
// current mode from the process-wide flag.
type ThemeChanged struct{}

func (SelectionChanged) message() {}
func (ThemeChanged) message()     {}
