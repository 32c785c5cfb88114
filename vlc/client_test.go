package vlc

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlcrc/config"
	"vlcrc/internal/errors"
	"vlcrc/internal/transport"
)

func testConfig(addr string) *config.Config {
	cfg := config.Default()
	host, portStr, _ := net.SplitHostPort(addr)
	cfg.Host = host
	cfg.Port = mustAtoi(portStr)
	cfg.ConnectTimeout = 2 * time.Second
	cfg.LoginTimeout = 2 * time.Second
	cfg.ProbeTimeout = 2 * time.Second
	cfg.CommandTimeout = 2 * time.Second
	cfg.Retries = 2
	return cfg
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}

func TestDial_ConnectAndLogin(t *testing.T) {
	m := startMockPlayer(t, "admin", nil)

	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	assert.Equal(t, Authenticated, c.State())
	assert.True(t, c.IsConnected(context.Background()))
}

func TestDial_Deferred(t *testing.T) {
	cfg := testConfig("127.0.0.1:1") // never dialed
	cfg.AutoConnect = false
	cfg.AutoLogin = false

	c, err := Dial(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, Disconnected, c.State())
	assert.False(t, c.IsConnected(context.Background()))
}

func TestConnect_Refused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	c := New(testConfig(addr), nil)
	err = c.Connect(context.Background())
	require.Error(t, err)
	var ce *errors.ConnectionError
	assert.True(t, errors.As(err, &ce), "want ConnectionError, got %T", err)
	assert.Contains(t, err.Error(), "control interface is enabled and accessible")
}

func TestLogin_WrongPassword(t *testing.T) {
	m := startMockPlayer(t, "secret", nil)
	cfg := testConfig(m.Addr())
	cfg.Password = "not-secret"

	_, err := Dial(context.Background(), cfg, nil)
	require.Error(t, err)
	var ae *errors.AuthError
	assert.True(t, errors.As(err, &ae), "wrong password must be AuthError, got %T: %v", err, err)
}

func TestLogin_UnexpectedResponse(t *testing.T) {
	m := startMockPlayer(t, "admin", nil)
	m.SetBanner("Hello there")

	_, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.Error(t, err)
	var ce *errors.CommandError
	require.True(t, errors.As(err, &ce), "non-welcome banner must be CommandError, got %T: %v", err, err)
	assert.Contains(t, err.Error(), "unexpected password response")

	var ae *errors.AuthError
	assert.False(t, errors.As(err, &ae))
}

func TestLogin_NotConnected(t *testing.T) {
	c := New(testConfig("127.0.0.1:1"), nil)
	err := c.Login(context.Background())
	assert.True(t, errors.Is(err, errors.ErrNotConnected))
}

func TestDisconnect_AlwaysSafe(t *testing.T) {
	m := startMockPlayer(t, "admin", nil)
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)

	assert.NoError(t, c.Disconnect())
	assert.NoError(t, c.Disconnect(), "repeat disconnect from Disconnected state")
	assert.Equal(t, Disconnected, c.State())
}

func TestIsConnected_FalseOnDeadTransport(t *testing.T) {
	m := startMockPlayer(t, "admin", nil)
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	m.DropConnections()
	assert.False(t, c.IsConnected(context.Background()))
}

func TestRun_EndToEnd(t *testing.T) {
	m := startMockPlayer(t, "admin", map[string]string{
		"status": "( new input: file:///a b.mp3 )\r\n( audio volume: 256 )\r\n( state playing )\r\n",
		"volume": "256\r\n",
	})
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file:///a%20b.mp3", st.Input)
	assert.Equal(t, 256, st.Volume)
	assert.Equal(t, "playing", st.State)

	vol, err := c.Volume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 256, vol)

	assert.GreaterOrEqual(t, c.Metrics().CommandsTotal(), int64(2))
}

func TestRun_UnknownCommand(t *testing.T) {
	m := startMockPlayer(t, "admin", map[string]string{
		"plya": "Unknown command `plya'. Type `help' for help.\r\n",
	})
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	_, err = c.Run(context.Background(), "plya")
	require.Error(t, err)
	var ce *errors.CommandError
	assert.True(t, errors.As(err, &ce), "want CommandError, got %T", err)
}

func TestRun_ScriptError(t *testing.T) {
	m := startMockPlayer(t, "admin", map[string]string{
		"goto 99": "Error in `goto': index out of range\r\n",
	})
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	err = c.Goto(context.Background(), 99)
	require.Error(t, err)
	var le *errors.LuaError
	require.True(t, errors.As(err, &le), "want LuaError, got %T", err)
	assert.Contains(t, le.Message, "index out of range")
}

func TestRun_ReconnectsAfterDrop(t *testing.T) {
	m := startMockPlayer(t, "admin", map[string]string{
		"get_time": "42\r\n",
	})
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	m.DropConnections()

	// The dead session must be detected, redialed, re-authenticated,
	// and the command retried, all inside one GetTime call.
	got, err := c.GetTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, int64(1), c.Metrics().Reconnects())
	assert.Equal(t, 2, m.Logins(), "reconnect must re-run the handshake")
}

func TestLogout_RemoteClosesWithoutPrompt(t *testing.T) {
	m := startMockPlayer(t, "admin", nil)
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	assert.NoError(t, c.Logout(context.Background()))
}

// ── Retry budget (fault injection) ───────────────────────────────────

// failingDialer always refuses, counting attempts.
type failingDialer struct {
	calls int
}

func (d *failingDialer) Dial(ctx context.Context, address string) (transport.Conn, error) {
	d.calls++
	return nil, fmt.Errorf("dial %s: connection refused", address)
}

func TestRun_RetryBudgetExhausted(t *testing.T) {
	cfg := testConfig("127.0.0.1:1")
	cfg.AutoConnect = false
	cfg.Retries = 3

	c := New(cfg, nil)
	d := &failingDialer{}
	c.dialer = d

	_, err := c.Run(context.Background(), "status")
	require.Error(t, err)
	var ce *errors.ConnectionError
	require.True(t, errors.As(err, &ce), "want ConnectionError, got %T", err)
	assert.Equal(t, 3, ce.Attempts)
	assert.Equal(t, 3, d.calls, "exactly retries reconnect attempts")
	assert.Equal(t, int64(3), c.Metrics().Reconnects())
}

func TestRun_ZeroRetries(t *testing.T) {
	cfg := testConfig("127.0.0.1:1")
	cfg.AutoConnect = false
	cfg.Retries = 0

	c := New(cfg, nil)
	d := &failingDialer{}
	c.dialer = d

	_, err := c.Run(context.Background(), "status")
	require.Error(t, err)
	assert.Equal(t, 0, d.calls, "zero budget means no reconnect attempts")
}

func TestRun_AuthFailureDoesNotBurnBudget(t *testing.T) {
	m := startMockPlayer(t, "secret", nil)
	cfg := testConfig(m.Addr())
	cfg.AutoConnect = false
	cfg.Password = "wrong"
	cfg.Retries = 5

	c := New(cfg, nil)
	_, err := c.Run(context.Background(), "status")
	require.Error(t, err)
	var ae *errors.AuthError
	assert.True(t, errors.As(err, &ae), "want AuthError, got %T: %v", err, err)
	assert.Equal(t, int64(1), c.Metrics().Reconnects(), "a rejected password must abort retrying immediately")
}

func TestRun_ContextCancelled(t *testing.T) {
	cfg := testConfig("127.0.0.1:1")
	cfg.AutoConnect = false

	c := New(cfg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx, "status")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "disconnected", Disconnected.String())
	assert.Equal(t, "connected", Connected.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}

func TestLoginSkipsOneLeadingEmptyLine(t *testing.T) {
	// The mock always sends "\r\n" before the banner; successful login
	// in every other test already covers the skip. Here the banner
	// itself carries the prompt, so no extra drain read happens.
	m := startMockPlayer(t, "admin", nil)
	m.SetBanner("Welcome, Master, type `help' for help. > ")

	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()
	assert.Equal(t, Authenticated, c.State())
}

func TestRun_WrongPasswordAnyCasing(t *testing.T) {
	for _, reject := range []string{"Wrong password", "WRONG PASSWORD", "wrong password"} {
		reject := reject
		t.Run(reject, func(t *testing.T) {
			m := startMockPlayer(t, "secret", nil)
			m.SetReject(reject)
			cfg := testConfig(m.Addr())
			cfg.Password = "nope"

			_, err := Dial(context.Background(), cfg, nil)
			var ae *errors.AuthError
			require.True(t, errors.As(err, &ae), "rejection %q must be AuthError, got %v", reject, err)
		})
	}
}

func TestErrorMessagesCarryContext(t *testing.T) {
	m := startMockPlayer(t, "admin", map[string]string{
		"plya": "Unknown command `plya'. Type `help' for help.\r\n",
	})
	c, err := Dial(context.Background(), testConfig(m.Addr()), nil)
	require.NoError(t, err)
	defer c.Disconnect()

	_, err = c.Run(context.Background(), "plya")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "plya"), "error should name the command: %v", err)
}
