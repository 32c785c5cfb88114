// Package transport provides the blocking, line-buffered socket
// abstraction underlying a player session. Transports handle the "how"
// of byte movement (framing, delimiter scanning, deadlines) independent
// of what the bytes mean, which is the protocol layer's job.
package transport

import (
	"context"
	"time"
)

// Conn is a single established connection to the remote player.
//
// The protocol is strictly request/response: callers must not issue a
// read while another read is in flight. Close is the only way to
// unblock a stuck read.
type Conn interface {
	// WriteLine sends p followed by a single newline terminator.
	WriteLine(p []byte) error

	// ReadUntil blocks until the delimiter byte sequence appears in the
	// input stream, returning every byte read including the delimiter.
	//
	// A timeout of 0 means no read deadline; the context may still
	// cancel the read. On failure the bytes read so far are returned
	// alongside the error, so callers can salvage a partial response
	// (the remote closes the socket without a final prompt after
	// logout/shutdown).
	ReadUntil(ctx context.Context, delim []byte, timeout time.Duration) ([]byte, error)

	// Close releases the socket. It is idempotent.
	Close() error
}

// Dialer opens outbound connections to the remote player. The TCP
// implementation is the only one shipped; tests substitute scripted
// fakes.
type Dialer interface {
	// Dial establishes a connection to the given host:port address.
	Dial(ctx context.Context, address string) (Conn, error)
}
