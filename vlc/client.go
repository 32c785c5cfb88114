// Package vlc implements the authenticated session and command surface
// for the media player's password-gated, line-oriented control protocol.
//
// The protocol is strictly request/response with no pipelining: issuing
// a second command before the first response is drained would
// desynchronize the prompt framing. A Client therefore serializes all
// command execution behind one mutex; concurrent callers queue, they
// never interleave.
package vlc

import (
	"context"
	"strings"
	"sync"

	"vlcrc/config"
	"vlcrc/internal/errors"
	"vlcrc/internal/metrics"
	"vlcrc/internal/protocol"
	"vlcrc/internal/retry"
	"vlcrc/internal/transport"
	"vlcrc/util"
)

// State describes the session lifecycle.
type State int

const (
	Disconnected State = iota // no transport handle
	Connected                 // transport open, not authenticated
	Authenticated             // ready for commands
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Authenticated:
		return "authenticated"
	default:
		return "disconnected"
	}
}

// Client is a session with the player's control interface.
type Client struct {
	cfg     *config.Config
	dialer  transport.Dialer
	logger  *util.Logger
	metrics *metrics.Collector
	policy  *retry.Policy

	mu            sync.Mutex     // serializes every command
	conn          transport.Conn // owned slot, replaced (never mutated) on reconnect
	authenticated bool
}

// New returns a Client that has not dialed yet. cfg may be nil for all
// defaults; logger may be nil for a silent session.
func New(cfg *config.Config, logger *util.Logger) *Client {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Client{
		cfg:     cfg,
		logger:  logger,
		dialer:  &transport.TCPDialer{Timeout: cfg.ConnectTimeout},
		metrics: metrics.New(),
		policy: &retry.Policy{
			InitialDelay: cfg.ReconnectDelay,
			MaxDelay:     cfg.MaxReconnectDelay,
			Multiplier:   2.0,
			Jitter:       cfg.ReconnectDelay > 0,
		},
	}
}

// Dial constructs a Client and, according to the config's auto-connect
// and auto-login flags, establishes and authenticates the session.
// Suppress either flag for deferred initialization.
func Dial(ctx context.Context, cfg *config.Config, logger *util.Logger) (*Client, error) {
	c := New(cfg, logger)
	if !c.cfg.AutoConnect {
		return c, nil
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	if c.cfg.AutoLogin {
		if err := c.Login(ctx); err != nil {
			c.Disconnect() //nolint:errcheck
			return nil, err
		}
	}
	return c, nil
}

// Metrics exposes the session's counters.
func (c *Client) Metrics() *metrics.Collector { return c.metrics }

// State reports the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.conn == nil:
		return Disconnected
	case !c.authenticated:
		return Connected
	default:
		return Authenticated
	}
}

// Connect opens a fresh transport handle to the control interface. Any
// previous handle is closed first, so the slot is replaced rather than
// reused.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.conn != nil {
		c.conn.Close() //nolint:errcheck
		c.conn = nil
	}
	c.authenticated = false

	conn, err := c.dialer.Dial(ctx, c.cfg.Addr())
	if err != nil {
		return &errors.ConnectionError{Addr: c.cfg.Addr(), Err: err}
	}
	c.conn = conn
	c.logger.Verbose("connected to %s", c.cfg.Addr())
	return nil
}

// Disconnect closes the transport and resets the session. It is safe
// to call from any state, repeatedly.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnectLocked()
}

func (c *Client) disconnectLocked() error {
	c.authenticated = false
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Login performs the password handshake on an open connection.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginLocked(ctx)
}

func (c *Client) loginLocked(ctx context.Context) error {
	if c.conn == nil {
		return errors.ErrNotConnected
	}

	if _, err := c.conn.ReadUntil(ctx, []byte(protocol.PasswordPrompt), c.cfg.LoginTimeout); err != nil {
		return &errors.CommandError{Reason: "no password prompt: " + err.Error()}
	}
	if err := c.writeLine([]byte(c.cfg.Password)); err != nil {
		return &errors.CommandError{Reason: "send password: " + err.Error()}
	}

	// The server may emit one empty line before the banner; discard it
	// once at most.
	var response string
	for i := 0; i < 2; i++ {
		raw, err := c.conn.ReadUntil(ctx, []byte("\n"), c.cfg.LoginTimeout)
		if err != nil {
			return &errors.CommandError{Reason: "read password response: " + err.Error()}
		}
		c.metrics.BytesReceived(int64(len(raw)))
		response = strings.Trim(string(raw), "\r\n")
		if response != "" {
			break
		}
	}
	c.logger.Debug("password response: %s", response)

	lower := strings.ToLower(response)
	if strings.Contains(lower, "wrong password") {
		return &errors.AuthError{Addr: c.cfg.Addr()}
	}
	if !strings.Contains(lower, "welcome") {
		return &errors.CommandError{Reason: "unexpected password response: " + response}
	}

	// Drain the rest of the banner unless the prompt already arrived.
	if !strings.Contains(response, protocol.Prompt) {
		if _, err := c.conn.ReadUntil(ctx, []byte(protocol.Prompt), c.cfg.LoginTimeout); err != nil {
			return &errors.CommandError{Reason: "drain banner: " + err.Error()}
		}
	}
	c.authenticated = true
	c.logger.Info("authenticated to %s", c.cfg.Addr())
	return nil
}

// IsConnected probes liveness: a bare newline must echo back a prompt.
// This is a best-effort heuristic, not a guarantee of protocol health;
// a wedged remote that still answers bytes will pass it.
func (c *Client) IsConnected(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isConnectedLocked(ctx)
}

func (c *Client) isConnectedLocked(ctx context.Context) bool {
	if c.conn == nil {
		return false
	}
	c.metrics.ProbeSent()
	if err := c.conn.WriteLine(nil); err != nil {
		c.logger.Debug("liveness probe write failed: %v", err)
		return false
	}
	c.metrics.BytesSent(1)
	answer, err := c.conn.ReadUntil(ctx, []byte(protocol.Prompt), c.cfg.ProbeTimeout)
	if err != nil {
		c.logger.Debug("liveness probe read failed: %v", err)
		return false
	}
	c.metrics.BytesReceived(int64(len(answer)))
	return len(answer) > 0
}

// writeLine sends one line and accounts for the bytes.
func (c *Client) writeLine(p []byte) error {
	if err := c.conn.WriteLine(p); err != nil {
		return err
	}
	c.metrics.BytesSent(int64(len(p)) + 1)
	return nil
}
