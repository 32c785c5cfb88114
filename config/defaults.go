package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultHost is where the control interface usually lives.
	DefaultHost = "localhost"

	// DefaultPort is the player's standard control interface port.
	DefaultPort = 4212

	// DefaultPassword matches the control interface's shipped default.
	DefaultPassword = "admin"

	// DefaultRetries is the reconnect budget per command invocation.
	DefaultRetries = 5

	// DefaultConnectTimeout bounds the TCP dial.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultLoginTimeout bounds each handshake read.
	DefaultLoginTimeout = 10 * time.Second

	// DefaultProbeTimeout bounds the liveness probe read.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultCommandTimeout bounds ordinary command reads. Set the
	// field to 0 to wait indefinitely like the reference interface.
	DefaultCommandTimeout = 10 * time.Second

	// DefaultMaxReconnectDelay caps the backoff between reconnect
	// attempts when a delay is configured.
	DefaultMaxReconnectDelay = 10 * time.Second
)
