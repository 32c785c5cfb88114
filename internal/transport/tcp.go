package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"vlcrc/internal/errors"
)

// TCPDialer establishes plain TCP connections to the player's control
// port.
type TCPDialer struct {
	Timeout time.Duration // connect timeout (0 = OS default)
}

// Dial connects to address over TCP.
func (d *TCPDialer) Dial(ctx context.Context, address string) (Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}
	c, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return newTCPConn(c), nil
}

// tcpConn wraps a net.Conn with a buffered reader for delimiter scans.
type tcpConn struct {
	conn net.Conn
	br   *bufio.Reader

	closeOnce sync.Once
	closeErr  error
}

func newTCPConn(c net.Conn) *tcpConn {
	return &tcpConn{conn: c, br: bufio.NewReader(c)}
}

// WriteLine sends p plus a newline in a single write.
func (c *tcpConn) WriteLine(p []byte) error {
	buf := make([]byte, 0, len(p)+1)
	buf = append(buf, p...)
	buf = append(buf, '\n')
	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

// ReadUntil scans byte-by-byte for delim, honoring both the per-call
// timeout and context cancellation. Partial data is always returned.
func (c *tcpConn) ReadUntil(ctx context.Context, delim []byte, timeout time.Duration) ([]byte, error) {
	if len(delim) == 0 {
		return nil, errors.New("read until: empty delimiter")
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	// A zero deadline clears any previous one.
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	// Cancellation unblocks the read by expiring the deadline early.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.SetReadDeadline(time.Now()) //nolint:errcheck
		case <-stop:
		}
	}()

	var out []byte
	for {
		b, err := c.br.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return out, fmt.Errorf("read until %q: %w", delim, ctx.Err())
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return out, fmt.Errorf("read until %q: %w", delim, errors.ErrTimeout)
			}
			return out, fmt.Errorf("read until %q: %w", delim, err)
		}
		out = append(out, b)
		if bytes.HasSuffix(out, delim) {
			return out, nil
		}
	}
}

// Close releases the socket unconditionally. Safe to call repeatedly.
func (c *tcpConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
