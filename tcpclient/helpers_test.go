package tcpclient

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeSocket is a scripted socket.
//
// queued is what the OS "already holds" and is only handed out by recvNow;
// late arrives only through recvWait.
type fakeSocket struct {
	queued  []byte
	late    []byte
	nowErr  error // returned by recvNow once queued is exhausted
	waitErr error // returned by recvWait once late is exhausted
	sendErr error

	nowCalls    int
	waitCalls   int
	lastTimeout time.Duration
	sent        bytes.Buffer
	closed      int
}

var _ socket = (*fakeSocket)(nil)

func (s *fakeSocket) recvNow(p []byte) (int, error) {
	s.nowCalls++
	n := copy(p, s.queued)
	s.queued = s.queued[n:]
	if n == 0 && s.nowErr != nil {
		return 0, s.nowErr
	}

	return n, nil
}

func (s *fakeSocket) recvWait(p []byte, timeout time.Duration) (int, error) {
	s.waitCalls++
	s.lastTimeout = timeout
	n := copy(p, s.late)
	s.late = s.late[n:]
	if n == 0 {
		return 0, s.waitErr
	}

	return n, nil
}

func (s *fakeSocket) send(p []byte) (int, error) {
	if s.sendErr != nil {
		return 0, s.sendErr
	}

	return s.sent.Write(p)
}

func (s *fakeSocket) close() error {
	s.closed++
	return nil
}

// newFakeClient returns an open Client wired to sock.
func newFakeClient(t *testing.T, sock socket, opts ...Option) *Client {
	t.Helper()

	c, err := New(opts...)
	require.NoError(t, err)

	c.resetBuffers()
	c.remote = "fake:0"
	require.NoError(t, acquireSocket())
	c.attach(sock)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// startPeer listens on loopback and runs script on the first accepted
// connection. The returned wait reports the script's error.
func startPeer(t *testing.T, script func(conn net.Conn) error) (uint16, func() error) {
	t.Helper()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		defer conn.Close()

		return script(conn)
	})

	port := uint16(ln.Addr().(*net.TCPAddr).Port)

	return port, g.Wait
}

// freePort returns a loopback port with nothing listening on it.
func freePort(t *testing.T) uint16 {
	t.Helper()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	require.NoError(t, ln.Close())

	return port
}

// openClient connects a new Client to a loopback port.
func openClient(t *testing.T, port uint16, opts ...Option) *Client {
	t.Helper()

	c, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, c.Open(context.Background(), "127.0.0.1", port))
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// drainUntilEOF reads from r until the peer closes.
func drainUntilEOF(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

// blockingDialer never connects; it waits for the dial context to end.
type blockingDialer struct{}

func (blockingDialer) DialContext(ctx context.Context, network, _ string) (net.Conn, error) {
	<-ctx.Done()
	return nil, &net.OpError{Op: "dial", Net: network, Err: ctx.Err()}
}

// errDialer fails every dial with err.
type errDialer struct{ err error }

func (d errDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	return nil, d.err
}

// pipeDialer hands out the local end of a net.Pipe; the remote end is sent
// on peers.
type pipeDialer struct {
	peers chan net.Conn
}

func (d *pipeDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	local, remote := net.Pipe()
	d.peers <- remote

	return local, nil
}

// faultyConn is a dialed conn that cannot be prepared: SetDeadline fails with
// deadlineErr and Close with closeErr. Other methods are not expected.
type faultyConn struct {
	net.Conn

	deadlineErr error
	closeErr    error
	closed      bool
}

func (c *faultyConn) SetDeadline(time.Time) error { return c.deadlineErr }

func (c *faultyConn) Close() error {
	c.closed = true
	return c.closeErr
}

// connDialer hands out conn on every dial.
type connDialer struct{ conn net.Conn }

func (d connDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	return d.conn, nil
}

// gateDialer closes dialing when a dial starts and holds it until release is
// closed, then connects through a net.Pipe whose remote end goes to peers.
type gateDialer struct {
	dialing chan struct{}
	release chan struct{}
	peers   chan net.Conn
}

func (d *gateDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	close(d.dialing)
	<-d.release

	local, remote := net.Pipe()
	d.peers <- remote

	return local, nil
}
