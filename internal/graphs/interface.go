// Package graphs renders graph view scenes to files, so a diagram can be
// inspected outside the browser.
package graphs

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/psidex/loopview/internal/graphview"
)

// SceneProvider receives every scene a controller paints and keeps the latest.
type SceneProvider interface {
	graphview.Surface
}

// CliSceneProvider extends SceneProvider to accommodate CLI functionality.
type CliSceneProvider interface {
	SceneProvider

	// Render writes the latest scene to w.
	Render(w io.Writer) error
	// Extension is the file extension written by RenderToFile, with the dot.
	Extension() string
	// filename should be the desired file name without an extension. It returns
	// the path written.
	RenderToFile(filename string) (string, error)
}

// DefaultTitle heads HTML renders when no title is given.
const DefaultTitle = "loopview"

// LatestScene implements SceneProvider and is embedded by every provider.
type LatestScene struct {
	mu    *sync.Mutex
	scene graphview.Scene
}

func NewLatestScene() LatestScene {
	return LatestScene{mu: &sync.Mutex{}}
}

func (l *LatestScene) Paint(s graphview.Scene) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scene = s
}

// Scene returns the last painted scene.
func (l *LatestScene) Scene() graphview.Scene {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scene
}

// WriteFile renders p to filename plus the provider's extension.
func WriteFile(p CliSceneProvider, filename string) (string, error) {
	filename = filename + p.Extension()

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := p.Render(f); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", filename, err)
	}
	return filename, f.Close()
}
