package webserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/psidex/loopview/internal/lib"
)

// Event is a semantic event mirrored to server-sent event listeners.
type Event struct {
	Name    string `json:"-"`
	Session string `json:"session"`
	Target  string `json:"target,omitempty"`
	ID      string `json:"id"`
}

const listenerBuffer = 16

// Hub fans events out to every /events listener. Slow listeners miss events
// rather than block the views that emit them.
type Hub struct {
	mu        *sync.Mutex
	listeners map[chan Event]struct{}
	heartbeat time.Duration
	logger    *slog.Logger
	closed    chan struct{}
	closeOnce *sync.Once
}

func NewHub(heartbeat time.Duration, logger *slog.Logger) *Hub {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Hub{
		mu:        &sync.Mutex{},
		listeners: make(map[chan Event]struct{}),
		heartbeat: heartbeat,
		logger:    lib.OrDiscard(logger),
		closed:    make(chan struct{}),
		closeOnce: &sync.Once{},
	}
}

// Close ends every open stream.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.closed) })
}

func (h *Hub) subscribe() (chan Event, func()) {
	ch := make(chan Event, listenerBuffer)
	h.mu.Lock()
	h.listeners[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.listeners, ch)
		h.mu.Unlock()
	}
}

// Publish sends ev to every listener without blocking.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.listeners {
		select {
		case ch <- ev:
		default:
			h.logger.Debug("dropping event for slow listener", "event", ev.Name)
		}
	}
}

// Listeners is the number of connected listeners.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, unsubscribe := h.subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.closed:
			return
		case <-ticker.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Debug("failed to encode event", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
			flusher.Flush()
		}
	}
}
