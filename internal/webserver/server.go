// Package webserver serves graph views to browsers: static assets, one
// websocket session per mounted view, and a server-sent event stream of the
// semantic events those views emit.
package webserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/lib"
)

type Options struct {
	Address   string
	StaticDir string
	// AllowedOrigins for websocket upgrades; empty allows any origin.
	AllowedOrigins    []string
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	ShutdownTimeout   time.Duration

	// Bus carries theme changes between views. The theme flag must already be
	// attached to it.
	Bus    *bus.Bus
	Theme  graphview.ThemeSource
	Layout *layout.Store
	// View holds the per-view settings, its collaborators are filled in per
	// session.
	View   graphview.Options
	Logger *slog.Logger
}

type Server struct {
	opts        Options
	bus         *bus.Bus
	theme       graphview.ThemeSource
	layout      *layout.Store
	viewOptions graphview.Options
	hub         *Hub
	upgrader    websocket.Upgrader
	logger      *slog.Logger

	mu       *sync.Mutex
	sessions map[string]lib.ThreadSafeWebSocket
}

func New(opts Options) *Server {
	if opts.Bus == nil {
		opts.Bus = bus.New()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	logger := lib.OrDiscard(opts.Logger)

	s := &Server{
		opts:        opts,
		bus:         opts.Bus,
		theme:       opts.Theme,
		layout:      opts.Layout,
		viewOptions: opts.View,
		hub:         NewHub(opts.HeartbeatInterval, logger),
		logger:      logger,
		mu:          &sync.Mutex{},
		sessions:    make(map[string]lib.ThreadSafeWebSocket),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return slices.Contains(s.opts.AllowedOrigins, u.Scheme+"://"+u.Host)
}

// Handler routes every endpoint the server offers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.opts.StaticDir)))
	}
	mux.HandleFunc("/ws", s.viewSession)
	mux.Handle("/events", s.hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Hub is the server-sent event hub behind /events.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Sessions is the number of open view sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) viewSession(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Info("ws upgrade failed", "err", err)
		return
	}

	id := uuid.NewString()
	ws := lib.NewThreadSafeWebSocket(c, s.opts.WriteTimeout)
	defer ws.Close()

	s.mu.Lock()
	s.sessions[id] = ws
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}()

	s.logger.Info("view session opened", "session", id, "remote", r.RemoteAddr)
	s.newSession(id, ws).run(context.Background())
	s.logger.Info("view session closed", "session", id)
}

// closeSessions ends every open websocket, which ends their sessions.
func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ws := range s.sessions {
		_ = ws.Close()
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "address", s.opts.Address)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.closeSessions()
		s.hub.Close()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
