package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lectern-dev/lectern/pkg/nav"
	"github.com/lectern-dev/lectern/pkg/protocol"
)

// Session is one browser connection. It owns the WebSocket, the router
// driving it, and the cached view of the client's scroll offset.
//
// All router calls happen on the event-loop goroutine; the read and
// write loops never touch the router directly.
type Session struct {
	id     string
	conn   *websocket.Conn
	config *Config
	logger *slog.Logger
	router *nav.Router

	events chan *protocol.Event
	done   chan struct{}
	closed atomic.Bool

	writeMu sync.Mutex

	mu     sync.Mutex
	offset nav.ScrollPosition
	length int
}

func newSession(id string, conn *websocket.Conn, config *Config, logger *slog.Logger) *Session {
	return &Session{
		id:     id,
		conn:   conn,
		config: config,
		logger: logger.With("session", id),
		events: make(chan *protocol.Event, config.MaxEventQueue),
		done:   make(chan struct{}),
		length: 1,
	}
}

// ID returns the session identifier issued during the handshake.
func (s *Session) ID() string {
	return s.id
}

// Router returns the navigation router driving this session.
func (s *Session) Router() *nav.Router {
	return s.router
}

// Start launches the session loops. Call once, after the handshake.
func (s *Session) Start() {
	go s.readLoop()
	go s.writeLoop()
	go s.eventLoop()
}

// Close tears the session down. Safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// readLoop reads and decodes client messages until the connection dies.
// Pings are answered inline; everything else is queued for the event
// loop so router calls stay single-threaded.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		ev, err := protocol.DecodeEvent(msg)
		if err != nil {
			s.logger.Warn("event decode error", "error", err)
			s.sendError(protocol.NewError(protocol.CodeInvalidMessage, "malformed event"))
			continue
		}

		if ev.Type == protocol.EventPing {
			s.sendPong(ev.Ping)
			continue
		}

		select {
		case s.events <- ev:
		default:
			s.logger.Warn("event queue full, dropping", "type", ev.Type)
			s.sendError(protocol.NewError(protocol.CodeRateLimited, "event queue full"))
		}
	}
}

// writeLoop sends periodic WebSocket-level pings so proxies and the
// read deadline see traffic on otherwise idle connections.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// eventLoop drives the router with decoded client events, one at a time.
func (s *Session) eventLoop() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		case <-s.done:
			return
		}
	}
}

func (s *Session) handleEvent(ev *protocol.Event) {
	ctx := context.Background()

	switch ev.Type {
	case protocol.EventClick:
		click := navClick(ev.Click)
		res, intercepted := s.router.HandleClick(ctx, click)
		// The page runtime prevents the default action before it knows
		// whether a route matches, so every click that arrives here must
		// end in a navigation: in-page when intercepted, a full load
		// otherwise.
		if !intercepted {
			s.Assign(click.Href)
		}
		s.logResult("click", res)

	case protocol.EventNavigate:
		var extra map[string]any
		if len(ev.Navigate.Extra) > 0 {
			if err := json.Unmarshal(ev.Navigate.Extra, &extra); err != nil {
				s.logger.Warn("bad navigate extra", "error", err)
			}
		}
		res := s.router.Push(ctx, ev.Navigate.Location, extra)
		s.logResult("navigate", res)

	case protocol.EventPop:
		res := s.router.HandlePop(ctx, ev.Pop.Location, navState(ev.Pop.State))
		s.logResult("pop", res)

	case protocol.EventScroll:
		s.mu.Lock()
		s.offset = nav.ScrollPosition{X: ev.Scroll.X, Y: ev.Scroll.Y}
		s.mu.Unlock()

	case protocol.EventHello:
		s.sendError(protocol.NewError(protocol.CodeInvalidMessage, "duplicate hello"))
	}
}

func (s *Session) logResult(kind string, res nav.Result) {
	if res.Err != nil {
		s.logger.Error("navigation fault", "kind", kind, "location", res.Location, "error", res.Err)
		return
	}
	s.logger.Debug("navigation", "kind", kind, "location", res.Location, "status", res.Status.String())
}

// send encodes and writes one command. Write errors end the session.
func (s *Session) send(cmd *protocol.Command) {
	if s.closed.Load() {
		return
	}
	data, err := protocol.EncodeCommand(cmd)
	if err != nil {
		s.logger.Error("command encode error", "type", cmd.Type, "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		s.Close()
	}
}

func (s *Session) sendPong(ping *protocol.PingEvent) {
	pong := &protocol.PongCommand{}
	if ping != nil {
		pong.Timestamp = ping.Timestamp
	}
	s.send(&protocol.Command{Type: protocol.CommandPong, Pong: pong})
}

func (s *Session) sendError(em *protocol.ErrorMessage) {
	s.send(protocol.NewErrorCommand(em))
	if em.IsFatal() {
		s.Close()
	}
}

// Push implements nav.History by emitting a push command.
func (s *Session) Push(state nav.State, location string) {
	s.send(protocol.NewPushCommand(wireState(state), location))
	s.mu.Lock()
	s.length++
	s.mu.Unlock()
}

// Replace implements nav.History by emitting a replace command.
func (s *Session) Replace(state nav.State, location string) {
	s.send(protocol.NewReplaceCommand(wireState(state), location))
}

// Back implements nav.History. The traversal's outcome arrives later as
// a pop event.
func (s *Session) Back() {
	s.send(protocol.NewBackCommand())
}

// Length implements nav.History. It counts entries this session pushed;
// the browser's full stack length is not observable from the server.
func (s *Session) Length() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.length
}

// Offset implements nav.Viewport from the client's last scroll report.
func (s *Session) Offset() nav.ScrollPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// ScrollTo implements nav.Viewport by emitting a scroll command. The
// cache is updated optimistically; the next scroll report corrects it
// if the client clamped the offset.
func (s *Session) ScrollTo(pos nav.ScrollPosition, behavior nav.ScrollBehavior) {
	s.send(protocol.NewScrollCommand(pos.X, pos.Y, wireBehavior(behavior)))
	s.mu.Lock()
	s.offset = pos
	s.mu.Unlock()
}

// Assign implements nav.Loader.
func (s *Session) Assign(href string) {
	s.send(protocol.NewAssignCommand(href))
}

// Reload implements nav.Loader.
func (s *Session) Reload() {
	s.send(protocol.NewReloadCommand())
}

// SetActive implements nav.LinkHighlighter.
func (s *Session) SetActive(pathname string) {
	s.send(protocol.NewActiveCommand(pathname))
}
