package bridge

import (
	"net/http"
	"net/url"
	"time"

	"github.com/lectern-dev/lectern/pkg/protocol"
)

// Config holds per-connection settings.
type Config struct {
	// ReadTimeout is the maximum time to wait for a message from the
	// client. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a command.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HandshakeTimeout is the maximum time for the client hello to
	// arrive after the upgrade. Default: 10 seconds.
	HandshakeTimeout time.Duration

	// HeartbeatInterval is the time between server pings. Default: 30
	// seconds. Must be shorter than ReadTimeout or idle connections die.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket
	// message. Default: protocol.MaxMessageSize.
	MaxMessageSize int64

	// MaxEventQueue is the size of the event channel buffer. Events
	// beyond it are dropped with a rate-limited error. Default: 64.
	MaxEventQueue int

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096 each.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the request origin during upgrade.
	// Default: same-origin only.
	CheckOrigin func(r *http.Request) bool

	// EnableCompression enables WebSocket per-message compression.
	// Default: false; navigation messages are too small to benefit.
	EnableCompression bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HandshakeTimeout:  10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    protocol.MaxMessageSize,
		MaxEventQueue:     64,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOrigin,
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// SameOrigin accepts upgrades only when the Origin header's host matches
// the request host. Requests without an Origin header (non-browser
// clients, tests) are accepted.
func SameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
