// Package config defines the runtime configuration for a vlcrc session
// and provides loading with flag > environment > config file > default
// precedence.
package config

import (
	"time"

	"vlcrc/internal/errors"
	"vlcrc/util"
)

// Config holds every tuneable for a single player session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host     string
	Port     int
	Password string

	// ── Session behavior ─────────────────────────────────────────────
	AutoConnect bool // connect at construction time
	AutoLogin   bool // authenticate at construction time (needs AutoConnect)
	Retries     int  // reconnect budget per command invocation

	// ── Timeouts ─────────────────────────────────────────────────────
	ConnectTimeout time.Duration
	LoginTimeout   time.Duration
	ProbeTimeout   time.Duration
	CommandTimeout time.Duration // 0 = block until the remote answers

	// ── Reconnect pacing ─────────────────────────────────────────────
	ReconnectDelay    time.Duration // 0 = reconnect immediately
	MaxReconnectDelay time.Duration

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	Metrics bool // dump session metrics on exit (CLI)
}

// Default returns a Config populated with every default value.
func Default() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		Password:          DefaultPassword,
		AutoConnect:       true,
		AutoLogin:         true,
		Retries:           DefaultRetries,
		ConnectTimeout:    DefaultConnectTimeout,
		LoginTimeout:      DefaultLoginTimeout,
		ProbeTimeout:      DefaultProbeTimeout,
		CommandTimeout:    DefaultCommandTimeout,
		MaxReconnectDelay: DefaultMaxReconnectDelay,
	}
}

// Addr returns the remote control interface address as "host:port".
func (c *Config) Addr() string {
	return util.FormatAddr(c.Host, c.Port)
}

// Validate checks every field for consistency.
func (c *Config) Validate() error {
	if c.Host == "" {
		return &errors.ConfigError{
			Field:   "host",
			Message: "host must not be empty",
			Hint:    "the default is localhost",
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &errors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "port out of range 1-65535",
			Hint:    "the player's control interface listens on 4212 by default",
		}
	}
	if c.Retries < 0 {
		return &errors.ConfigError{
			Field:   "retries",
			Value:   c.Retries,
			Message: "retries must be non-negative",
		}
	}
	if c.CommandTimeout < 0 || c.ConnectTimeout < 0 || c.LoginTimeout < 0 || c.ProbeTimeout < 0 {
		return &errors.ConfigError{
			Field:   "timeout",
			Message: "timeouts must be non-negative",
			Hint:    "use 0 to wait indefinitely for command output",
		}
	}
	if c.AutoLogin && !c.AutoConnect {
		return &errors.ConfigError{
			Field:   "auto-login",
			Message: "auto-login requires auto-connect",
		}
	}
	return nil
}
