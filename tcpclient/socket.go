package tcpclient

import (
	"errors"
	"net"
	"os"
	"syscall"
	"time"
)

// pollWindow bounds the "non-blocking" receive on connections that expose no
// raw descriptor.
const pollWindow = time.Millisecond

// socket is the transport capability the client reads and writes through.
type socket interface {
	// recvNow receives whatever is already queued without waiting.
	// It returns (0, nil) when nothing is queued and io.EOF when the peer
	// closed the stream.
	recvNow(p []byte) (int, error)
	// recvWait performs one receive that gives up after timeout; timeout <= 0
	// waits indefinitely. A lapsed timeout is not an error.
	recvWait(p []byte, timeout time.Duration) (int, error)
	// send writes p, blocking until it is handed to the OS.
	send(p []byte) (int, error)
	close() error
}

// netSocket implements socket on a net.Conn.
type netSocket struct {
	conn net.Conn
	raw  syscall.RawConn // nil when conn exposes no descriptor
}

var _ socket = (*netSocket)(nil)

// newNetSocket wraps conn and leaves it in blocking style: no deadlines set.
func newNetSocket(conn net.Conn) (*netSocket, error) {
	if err := conn.SetDeadline(time.Time{}); err != nil {
		return nil, err
	}

	s := &netSocket{conn: conn}
	if sc, ok := conn.(syscall.Conn); ok {
		raw, err := sc.SyscallConn()
		if err != nil {
			return nil, err
		}
		s.raw = raw
	}

	return s, nil
}

func (s *netSocket) recvWait(p []byte, timeout time.Duration) (int, error) {
	if timeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return 0, err
		}
		defer func() { _ = s.conn.SetReadDeadline(time.Time{}) }()
	}

	n, err := s.conn.Read(p)
	if err != nil && isTimeout(err) {
		return n, nil
	}

	return n, err
}

// recvPoll emulates a non-blocking receive with a very short deadline.
func (s *netSocket) recvPoll(p []byte) (int, error) {
	return s.recvWait(p, pollWindow)
}

func (s *netSocket) send(p []byte) (int, error) {
	return s.conn.Write(p)
}

func (s *netSocket) close() error {
	return s.conn.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var ne net.Error

	return errors.As(err, &ne) && ne.Timeout()
}
