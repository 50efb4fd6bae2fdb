package portal

import (
	"time"

	"github.com/lectern-dev/lectern/pkg/bridge"
)

// Config holds the portal server configuration.
type Config struct {
	// Address is the address to listen on. Default: ":8080".
	Address string

	// DataDir holds the subject data files. Default: "data".
	DataDir string

	// TemplatesDir receives the generated subject fragments.
	// Default: "templates".
	TemplatesDir string

	// ShutdownTimeout is the maximum time to wait for graceful
	// shutdown. Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout guards against slow-header clients.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// Bridge configures the WebSocket connections.
	// Default: bridge.DefaultConfig().
	Bridge *bridge.Config
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		DataDir:           "data",
		TemplatesDir:      "templates",
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		Bridge:            bridge.DefaultConfig(),
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	defaults := DefaultConfig()
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.DataDir == "" {
		out.DataDir = defaults.DataDir
	}
	if out.TemplatesDir == "" {
		out.TemplatesDir = defaults.TemplatesDir
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.Bridge == nil {
		out.Bridge = defaults.Bridge
	}
	return &out
}
