package webserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/lib"
	"github.com/psidex/loopview/internal/selection"
	"github.com/psidex/loopview/internal/sidebar"
)

// session is one mounted view: one websocket, one event loop, one controller.
// Selection is local to the page; theme changes arrive on the global bus.
type session struct {
	id     string
	ws     lib.ThreadSafeWebSocket
	loop   *bus.Loop
	page   *bus.Bus
	global *bus.Bus
	loops  *selection.Toggler
	view   *graphview.Controller
	hub    *Hub
	logger *slog.Logger

	panel  *sidebar.Panel
	window float64
	height float64
}

func (s *Server) newSession(id string, ws lib.ThreadSafeWebSocket) *session {
	logger := s.logger.With("session", id)
	sess := &session{
		id:     id,
		ws:     ws,
		loop:   bus.NewLoop(logger),
		page:   bus.New(),
		global: s.bus,
		hub:    s.hub,
		logger: logger,
		panel:  sidebar.NewPanel(),
	}
	sess.loops = selection.NewToggler(sess.page)

	opts := s.viewOptions
	opts.Layout = s.layout
	opts.Theme = s.theme
	opts.Emitter = sess
	opts.Surface = sess
	opts.Scheduler = sess.loop
	opts.Logger = logger
	sess.view = graphview.New(opts)
	return sess
}

// run serves the session until the websocket closes or ctx is done.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.loop.Run(ctx)

	s.loop.Post(func() {
		s.view.Listen(s.global, s.loop.Post)
		s.view.Listen(s.page, s.loop.Post)
	})

	for {
		_, msg, err := s.ws.ReadMessage()
		if err != nil {
			s.logger.Debug("websocket closed", "err", err)
			break
		}
		s.loop.Post(func() { s.handle(msg) })
	}

	destroyed := make(chan struct{})
	s.loop.Post(func() {
		s.view.Destroy()
		close(destroyed)
	})
	select {
	case <-destroyed:
	case <-s.loop.Done():
	}
	s.loop.Stop()
}

func (s *session) handle(raw []byte) {
	var m clientMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		s.logger.Info("dropping malformed message", "err", err)
		return
	}

	if m.Type != msgMount && !s.view.Ready() {
		s.logger.Debug("ignoring message before mount", "type", m.Type)
		return
	}

	switch m.Type {
	case msgMount:
		snap := m.snapshot()
		s.loops.Sync(snap.SelectedLoop)
		s.view.Mount(snap)
		if m.Window > 0 {
			s.resize(m.Window, m.Height)
		}
	case msgSnapshot:
		snap := m.snapshot()
		if snap.HasSelection {
			s.loops.Sync(snap.SelectedLoop)
		}
		s.view.ApplySnapshot(snap)
	case msgTap:
		switch m.Kind {
		case "node":
			s.view.TapNode(m.ID)
		case "edge":
			s.view.TapEdge(m.ID, m.Target)
		default:
			s.logger.Info("dropping tap of unknown kind", "kind", m.Kind)
		}
	case msgDragEnd:
		s.view.DragEnd(m.ID, layout.Position{X: m.X, Y: m.Y})
	case msgToggleLoop:
		s.loops.Toggle(m.LoopID)
	case msgUnselectLoop:
		s.loops.Unselect()
	case msgToggleHighContrast:
		s.global.Publish(bus.ThemeChanged{})
	case msgResize:
		s.resize(m.Window, m.Height)
	case msgSidebarDragStart:
		s.panel.Begin(m.X)
	case msgSidebarDrag:
		if m.Window > 0 {
			s.window = m.Window
		}
		if s.window <= 0 || !s.panel.Move(m.X, s.window) {
			return
		}
		s.fitPlot()
	case msgSidebarDragEnd:
		s.panel.End()
	default:
		s.logger.Info("dropping unknown message", "type", m.Type)
	}
}

// resize records a new window size, keeps the panel within it and refits the
// plot to what is left.
func (s *session) resize(window, height float64) {
	if window <= 0 {
		s.logger.Debug("ignoring resize without a window width")
		return
	}
	s.window = window
	if height > 0 {
		s.height = height
	}
	s.panel.Fit(window)
	s.fitPlot()
}

func (s *session) fitPlot() {
	plot := sidebar.PlotWidth(s.panel.Width(), s.window)
	if err := s.ws.WriteJSON(newSidebarFrame(s.panel.Width(), plot)); err != nil {
		s.logger.Debug("failed to send sidebar size", "err", err)
	}
	s.view.Resize(plot, s.height)
}

func (s *session) Paint(scene graphview.Scene) {
	if err := s.ws.WriteJSON(newSceneFrame(scene)); err != nil {
		s.logger.Debug("failed to send scene", "err", err)
	}
}

func (s *session) PushEvent(ev graphview.Event) {
	s.push("", ev)
}

func (s *session) PushEventTo(target string, ev graphview.Event) {
	s.push(target, ev)
}

func (s *session) push(target string, ev graphview.Event) {
	if err := s.ws.WriteJSON(newEventFrame(target, ev)); err != nil {
		s.logger.Debug("failed to send event", "err", err)
	}
	s.hub.Publish(Event{Name: ev.Name(), Session: s.id, Target: target, ID: ev.ElementID()})
}
