package bridge

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lectern-dev/lectern/pkg/nav"
	"github.com/lectern-dev/lectern/pkg/protocol"
)

// Setup configures a freshly created router for one session: route
// registrations, middleware, per-session state. A returned error aborts
// the handshake.
type Setup func(router *nav.Router, session *Session) error

// Handler upgrades HTTP requests to navigation sessions.
type Handler struct {
	config   *Config
	logger   *slog.Logger
	setup    Setup
	navOpts  []nav.Option
	upgrader websocket.Upgrader

	// onSession, when set, observes each started session. Used by the
	// server for connection tracking and draining.
	onSession func(*Session)
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithConfig replaces the default connection config.
func WithConfig(config *Config) HandlerOption {
	return func(h *Handler) {
		h.config = config
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRouterOptions passes extra options to every per-session router.
func WithRouterOptions(opts ...nav.Option) HandlerOption {
	return func(h *Handler) {
		h.navOpts = append(h.navOpts, opts...)
	}
}

// WithSessionObserver registers a callback invoked for each session
// after its loops start.
func WithSessionObserver(fn func(*Session)) HandlerOption {
	return func(h *Handler) {
		h.onSession = fn
	}
}

// NewHandler creates a WebSocket handler that builds one router per
// connection via setup.
func NewHandler(setup Setup, opts ...HandlerOption) *Handler {
	h := &Handler{
		config: DefaultConfig(),
		logger: slog.Default(),
		setup:  setup,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:    h.config.ReadBufferSize,
		WriteBufferSize:   h.config.WriteBufferSize,
		HandshakeTimeout:  h.config.HandshakeTimeout,
		CheckOrigin:       h.config.CheckOrigin,
		EnableCompression: h.config.EnableCompression,
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	conn.SetReadLimit(h.config.MaxMessageSize)

	hello, err := h.handshake(conn)
	if err != nil {
		h.logger.Warn("handshake failed", "error", err, "remote", r.RemoteAddr)
		conn.Close()
		return
	}

	session := newSession(newSessionID(), conn, h.config, h.logger)
	router := nav.New(session, session, session,
		append([]nav.Option{
			nav.WithLogger(session.logger),
			nav.WithLinkHighlighter(session),
		}, h.navOpts...)...)
	if err := h.setup(router, session); err != nil {
		h.logger.Error("session setup failed", "error", err)
		session.sendError(protocol.NewFatalError(protocol.CodeServerError, "setup failed"))
		return
	}
	session.router = router
	router.Init(hello.Location)

	session.send(&protocol.Command{
		Type: protocol.CommandHello,
		Hello: &protocol.ServerHello{
			Status:  protocol.StatusAccepted,
			Session: session.ID(),
			Time:    time.Now().UnixMilli(),
		},
	})
	session.Start()
	if h.onSession != nil {
		h.onSession(session)
	}
}

// handshake reads the client hello off a fresh connection.
func (h *Handler) handshake(conn *websocket.Conn) (*protocol.ClientHello, error) {
	conn.SetReadDeadline(time.Now().Add(h.config.HandshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	ev, err := protocol.DecodeEvent(msg)
	if err != nil {
		return nil, err
	}
	if ev.Type != protocol.EventHello {
		return nil, errors.New("bridge: first message is not a hello")
	}
	if ev.Hello.Version != protocol.Version {
		h.reject(conn)
		return nil, errors.New("bridge: protocol version mismatch")
	}
	return ev.Hello, nil
}

func (h *Handler) reject(conn *websocket.Conn) {
	data, err := protocol.EncodeCommand(&protocol.Command{
		Type:  protocol.CommandHello,
		Hello: &protocol.ServerHello{Status: protocol.StatusRejected},
	})
	if err != nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
	conn.WriteMessage(websocket.TextMessage, data)
}

func newSessionID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Out of entropy means a broken platform; nothing sane to do.
		panic(err)
	}
	return hex.EncodeToString(buf[:])
}
