package vlc

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
)

// mockPlayer speaks just enough of the control protocol to exercise a
// Client end to end: password handshake, prompt framing, scripted
// command responses.
type mockPlayer struct {
	t        *testing.T
	l        net.Listener
	password string

	// responses maps a full command line to its response body (lines
	// joined with \r\n, each terminated by \r\n, without the prompt).
	responses map[string]string

	mu     sync.Mutex
	banner string // overrides the post-login greeting ("Welcome, Master")
	reject string // overrides the rejection notice ("Wrong password")
	conns  []net.Conn
	logins int
}

func startMockPlayer(t *testing.T, password string, responses map[string]string) *mockPlayer {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	m := &mockPlayer{t: t, l: l, password: password, responses: responses}
	t.Cleanup(m.Close)
	go m.acceptLoop()
	return m
}

func (m *mockPlayer) Addr() string { return m.l.Addr().String() }

// SetBanner overrides the post-login greeting.
func (m *mockPlayer) SetBanner(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banner = s
}

// SetReject overrides the wrong-password notice.
func (m *mockPlayer) SetReject(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reject = s
}

// Logins returns how many handshakes completed (successfully or not).
func (m *mockPlayer) Logins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logins
}

// DropConnections severs every active connection, simulating a remote
// restart.
func (m *mockPlayer) DropConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.conns {
		c.Close()
	}
	m.conns = nil
}

func (m *mockPlayer) Close() {
	m.l.Close()
	m.DropConnections()
}

func (m *mockPlayer) acceptLoop() {
	for {
		conn, err := m.l.Accept()
		if err != nil {
			return
		}
		m.mu.Lock()
		m.conns = append(m.conns, conn)
		m.mu.Unlock()
		go m.serve(conn)
	}
}

func (m *mockPlayer) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)

	conn.Write([]byte("Password: "))
	line, err := r.ReadString('\n')
	if err != nil {
		return
	}
	m.mu.Lock()
	m.logins++
	banner, reject := m.banner, m.reject
	m.mu.Unlock()
	if banner == "" {
		banner = "Welcome, Master"
	}
	if reject == "" {
		reject = "Wrong password"
	}

	if strings.TrimRight(line, "\r\n") != m.password {
		conn.Write([]byte("\r\n" + reject + "\r\n"))
		return
	}
	conn.Write([]byte("\r\n" + banner + "\r\n> "))

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		if cmd == "" {
			// Liveness probe: a bare newline echoes a prompt.
			conn.Write([]byte("> "))
			continue
		}
		switch cmd {
		case "logout", "shutdown":
			conn.Write([]byte("Bye-bye!\r\n"))
			return
		default:
			conn.Write([]byte(m.responses[cmd] + "> "))
		}
	}
}
