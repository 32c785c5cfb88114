package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlcrc/internal/errors"
)

// startServer runs handler on the first accepted connection and returns
// the listen address.
func startServer(t *testing.T, handler func(net.Conn)) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}()
	return l.Addr().String()
}

func TestTCPDialer_DialFailure(t *testing.T) {
	// A listener that is immediately closed yields a refused port.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	d := &TCPDialer{Timeout: time.Second}
	_, err = d.Dial(context.Background(), addr)
	assert.Error(t, err)
}

func TestReadUntil_StopsAtDelimiter(t *testing.T) {
	addr := startServer(t, func(conn net.Conn) {
		conn.Write([]byte("line one\r\nline two\r\n> leftover"))
		time.Sleep(200 * time.Millisecond)
	})

	d := &TCPDialer{Timeout: time.Second}
	c, err := d.Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.ReadUntil(context.Background(), []byte("> "), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "line one\r\nline two\r\n> ", string(got))

	// The bytes after the delimiter stay buffered for the next read.
	rest, err := c.ReadUntil(context.Background(), []byte("over"), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "leftover", string(rest))
}

func TestReadUntil_Timeout(t *testing.T) {
	addr := startServer(t, func(conn net.Conn) {
		conn.Write([]byte("partial"))
		time.Sleep(2 * time.Second)
	})

	d := &TCPDialer{Timeout: time.Second}
	c, err := d.Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.ReadUntil(context.Background(), []byte("> "), 150*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err), "want timeout classification, got %v", err)
	assert.Equal(t, "partial", string(got), "partial data should be returned with the error")
}

func TestReadUntil_ContextCancel(t *testing.T) {
	addr := startServer(t, func(conn net.Conn) {
		time.Sleep(2 * time.Second)
	})

	d := &TCPDialer{Timeout: time.Second}
	c, err := d.Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err = c.ReadUntil(ctx, []byte("> "), 5*time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "want context.Canceled, got %v", err)
	assert.Less(t, time.Since(start), time.Second, "cancellation should unblock the read promptly")
}

func TestReadUntil_EOFReturnsPartialData(t *testing.T) {
	addr := startServer(t, func(conn net.Conn) {
		conn.Write([]byte("Bye-bye!\r\n"))
		// handler returns, closing the connection
	})

	d := &TCPDialer{Timeout: time.Second}
	c, err := d.Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.ReadUntil(context.Background(), []byte("> "), time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF), "want EOF, got %v", err)
	assert.Equal(t, "Bye-bye!\r\n", string(got))
}

func TestWriteLine_AppendsNewline(t *testing.T) {
	lines := make(chan string, 1)
	addr := startServer(t, func(conn net.Conn) {
		r := bufio.NewReader(conn)
		line, err := r.ReadString('\n')
		if err == nil {
			lines <- line
		}
	})

	d := &TCPDialer{Timeout: time.Second}
	c, err := d.Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.WriteLine([]byte("status")))

	select {
	case line := <-lines:
		assert.Equal(t, "status\n", line)
	case <-time.After(time.Second):
		t.Fatal("server did not receive the line")
	}
}

func TestClose_Idempotent(t *testing.T) {
	addr := startServer(t, func(conn net.Conn) {
		time.Sleep(100 * time.Millisecond)
	})

	d := &TCPDialer{Timeout: time.Second}
	c, err := d.Dial(context.Background(), addr)
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
