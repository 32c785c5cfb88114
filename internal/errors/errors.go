// Package errors provides domain-specific error types for vlcrc.
//
// These types carry structured context (the command, the offending
// response line, the remote address) that helps callers decide how to
// handle failures and provides better diagnostics than plain string
// wrapping.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNotConnected = errors.New("not connected")
	ErrTimeout      = errors.New("read timed out")
	ErrClosed       = errors.New("transport is closed")
)

// ── Structured error types ───────────────────────────────────────────

// ConnectionError reports that the transport could not be opened, or
// that the reconnect budget ran out while the remote stayed unreachable.
type ConnectionError struct {
	Addr     string // remote host:port
	Attempts int    // reconnect attempts made before giving up (0 on a plain dial failure)
	Err      error  // underlying error, may be nil on budget exhaustion
}

func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("could not connect to %s: make sure the control interface is enabled and accessible", e.Addr)
	if e.Attempts > 0 {
		msg += fmt.Sprintf(" (gave up after %d reconnect attempts)", e.Attempts)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthError reports a rejected password. Fatal for the session: the
// caller must supply corrected credentials and reconnect.
type AuthError struct {
	Addr string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login to %s failed: wrong password", e.Addr)
}

// CommandError reports malformed or unrecognized command text, or
// unexpected handshake content. It does not invalidate the session.
type CommandError struct {
	Command string // the command sent, empty during the handshake
	Reason  string
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// LuaError reports that the remote scripting layer failed on an
// otherwise well-formed command. Message preserves the remote's text.
type LuaError struct {
	Command string
	Message string
}

func (e *LuaError) Error() string {
	return fmt.Sprintf("%s: remote script error: %s", e.Command, e.Message)
}

// ParseError reports a response that did not match the expected shape.
// Line carries the offending raw content for diagnosis.
type ParseError struct {
	What   string // what was being decoded: "status", "info", "toggle", ...
	Line   string // the offending line, or a shape summary
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("parse %s: %s", e.What, e.Reason)
	}
	return fmt.Sprintf("parse %s: %s: %q", e.What, e.Reason, e.Line)
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Classification helpers ───────────────────────────────────────────

// IsTimeout reports whether err stems from an elapsed read or dial
// deadline rather than a hard socket failure.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsAuth reports whether err is an authentication failure. Retrying
// with the same credentials cannot succeed.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use vlcrc/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
