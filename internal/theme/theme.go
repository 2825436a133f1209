// Package theme holds the process-wide theme flag. The graph view controller is
// the only reader that matters: it reads the flag once per style refresh and
// passes the mode down explicitly.
package theme

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/kvstore"
	"github.com/psidex/loopview/internal/lib"
)

// Mode is the colour theme.
type Mode int

const (
	Normal Mode = iota
	HighContrast
)

// StoreKey is the key the mode is persisted under.
const StoreKey = "theme"

func (m Mode) String() string {
	if m == HighContrast {
		return "high_contrast"
	}
	return "light"
}

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	if m == HighContrast {
		return Normal
	}
	return HighContrast
}

// ParseMode accepts the persisted names ("light", "high_contrast") and the
// aliases "normal" and "high-contrast".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "light", "normal":
		return Normal, nil
	case "high_contrast", "high-contrast":
		return HighContrast, nil
	}
	return Normal, fmt.Errorf("unknown theme %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Flag is the current mode, shared by every mounted view and persisted
// best-effort to a kvstore.
type Flag struct {
	mu     *sync.RWMutex
	mode   Mode
	kv     kvstore.Store
	logger *slog.Logger
}

// NewFlag reads the persisted mode from kv. A missing or unreadable value is
// Normal. kv may be nil, in which case nothing is persisted.
func NewFlag(kv kvstore.Store, logger *slog.Logger) *Flag {
	f := &Flag{
		mu:     &sync.RWMutex{},
		kv:     kv,
		logger: lib.OrDiscard(logger),
	}
	f.mode = f.load()
	return f
}

func (f *Flag) load() Mode {
	if f.kv == nil {
		return Normal
	}
	value, ok, err := f.kv.Get(StoreKey)
	if err != nil {
		f.logger.Debug("failed to read theme", "err", err)
		return Normal
	}
	if !ok {
		return Normal
	}
	mode, err := ParseMode(value)
	if err != nil {
		f.logger.Debug("ignoring stored theme", "err", err)
		return Normal
	}
	return mode
}

func (f *Flag) Mode() Mode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// Set changes the mode and persists it.
func (f *Flag) Set(mode Mode) {
	f.mu.Lock()
	f.mode = mode
	f.mu.Unlock()
	f.persist(mode)
}

// Toggle flips the mode and returns the new one.
func (f *Flag) Toggle() Mode {
	f.mu.Lock()
	f.mode = f.mode.Toggled()
	mode := f.mode
	f.mu.Unlock()
	f.persist(mode)
	return mode
}

func (f *Flag) persist(mode Mode) {
	if f.kv == nil {
		return
	}
	if err := f.kv.Set(StoreKey, mode.String()); err != nil {
		f.logger.Debug("failed to persist theme", "err", err)
	}
}

// Attach makes f commit a toggle for every ThemeChanged published on b. It
// must be attached before any view subscribes, so that views see the new mode
// when they handle the same broadcast.
func (f *Flag) Attach(b *bus.Bus) (detach func()) {
	return b.Subscribe(func(m bus.Message) {
		if _, ok := m.(bus.ThemeChanged); ok {
			mode := f.Toggle()
			f.logger.Info("theme changed", "mode", mode)
		}
	})
}
