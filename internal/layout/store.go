// Package layout places the nodes of a diagram: it keeps the user's manual
// arrangement in the local store and computes an automatic arrangement for
// anything that has no saved position.
package layout

import (
	"encoding/json"
	"log/slog"

	"github.com/psidex/loopview/internal/kvstore"
	"github.com/psidex/loopview/internal/lib"
)

// StorageKey is the namespaced key the saved arrangement lives under.
const StorageKey = "loopview:nodePositions"

// Position is a node's centre in model coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Store persists node positions. It never fails observably: writes are best
// effort and anything unreadable loads as "nothing saved".
type Store struct {
	kv     kvstore.Store
	logger *slog.Logger
}

// NewStore returns a Store over kv. A nil kv gives a Store that saves nothing.
func NewStore(kv kvstore.Store, logger *slog.Logger) *Store {
	return &Store{kv: kv, logger: lib.OrDiscard(logger)}
}

// Save overwrites the saved arrangement with positions.
func (s *Store) Save(positions map[string]Position) {
	if s == nil || s.kv == nil {
		return
	}
	if positions == nil {
		positions = map[string]Position{}
	}

	b, err := json.Marshal(positions)
	if err != nil {
		s.logger.Debug("failed to encode layout", "err", err)
		return
	}
	if err := s.kv.Set(StorageKey, string(b)); err != nil {
		s.logger.Debug("failed to save layout", "err", err)
	}
}

// Load returns the saved arrangement, or false if there is none or it cannot
// be decoded. An empty saved arrangement is returned as such.
func (s *Store) Load() (map[string]Position, bool) {
	if s == nil || s.kv == nil {
		return nil, false
	}

	value, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Debug("failed to read layout", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var positions map[string]Position
	if err := json.Unmarshal([]byte(value), &positions); err != nil {
		s.logger.Debug("ignoring malformed layout", "err", err)
		return nil, false
	}
	if positions == nil {
		return nil, false
	}
	return positions, true
}

// Clear removes the saved arrangement.
func (s *Store) Clear() {
	if s == nil || s.kv == nil {
		return
	}
	if err := s.kv.Delete(StorageKey); err != nil {
		s.logger.Debug("failed to clear layout", "err", err)
	}
}
