package vlc

import (
	"context"
	"fmt"
	"io"

	"vlcrc/internal/errors"
	"vlcrc/internal/protocol"
	"vlcrc/internal/retry"
)

// Run executes one command with the session's reconnect-retry policy
// and returns the raw response lines. Most callers want the typed
// wrappers in commands.go; Run is the escape hatch for commands outside
// the fixed vocabulary.
func (c *Client) Run(ctx context.Context, command string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runLocked(ctx, command)
}

// runLocked probes liveness before every send. A dead session buys a
// reconnect (including a fresh authentication handshake; a bare
// reconnect would land on the password prompt, not a command prompt)
// until the per-call budget is spent.
func (c *Client) runLocked(ctx context.Context, command string) ([]string, error) {
	budget := c.cfg.Retries
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.isConnectedLocked(ctx) {
			return c.sendRaw(ctx, command)
		}
		if attempt >= budget {
			err := &errors.ConnectionError{Addr: c.cfg.Addr(), Attempts: budget}
			c.metrics.RecordError(err.Error())
			return nil, err
		}
		if err := c.policy.Wait(ctx, attempt); err != nil {
			return nil, err
		}
		if err := c.reconnectLocked(ctx); err != nil {
			if retry.IsPermanent(err) {
				return nil, errors.Unwrap(err)
			}
			c.logger.Debug("reconnect attempt %d/%d failed: %v", attempt+1, budget, err)
		}
	}
}

// reconnectLocked replaces the transport handle and re-runs the full
// handshake. An authentication failure is permanent: redialing with the
// same password cannot succeed, so it must not burn the retry budget.
func (c *Client) reconnectLocked(ctx context.Context) error {
	c.metrics.Reconnect()
	c.logger.Verbose("reconnecting to %s", c.cfg.Addr())
	if err := c.connectLocked(ctx); err != nil {
		return err
	}
	if err := c.loginLocked(ctx); err != nil {
		if errors.IsAuth(err) {
			return retry.Permanent(err)
		}
		return err
	}
	return nil
}

// sendRaw frames and sends one command line, reads the response up to
// the next prompt, and classifies protocol-level error signals in the
// first line. The first line stays part of the output unless it matches
// an error pattern.
func (c *Client) sendRaw(ctx context.Context, command string) ([]string, error) {
	if c.conn == nil {
		return nil, errors.ErrNotConnected
	}
	c.logger.Debug("sending command: %s", command)
	if err := c.writeLine([]byte(command)); err != nil {
		return nil, fmt.Errorf("send %q: %w", command, err)
	}
	c.metrics.CommandSent()

	raw, err := c.conn.ReadUntil(ctx, []byte(protocol.Prompt), c.cfg.CommandTimeout)
	if err != nil {
		// logout/shutdown close the socket without a final prompt;
		// treat EOF with partial data as a complete response.
		if !(errors.Is(err, io.EOF) && len(raw) > 0) {
			c.metrics.RecordError(err.Error())
			return nil, fmt.Errorf("response to %q: %w", command, err)
		}
	}
	c.metrics.BytesReceived(int64(len(raw)))

	lines := protocol.SplitResponse(raw)
	c.logger.Debug("command output: %d line(s)", len(lines))
	if len(lines) > 0 {
		switch kind, text := protocol.ClassifyReply(lines[0]); kind {
		case protocol.ReplyUnknownCommand:
			cerr := &errors.CommandError{Command: command, Reason: "unknown command"}
			c.metrics.RecordError(cerr.Error())
			return nil, cerr
		case protocol.ReplyScriptError:
			lerr := &errors.LuaError{Command: command, Message: text}
			c.metrics.RecordError(lerr.Error())
			return nil, lerr
		}
	}
	return lines, nil
}
