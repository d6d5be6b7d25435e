package tcpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"syscall"

	"github.com/hashicorp/go-multierror"

	"github.com/arloliu/go-sensorlink/internal/ringbuf"
	"github.com/arloliu/go-sensorlink/logger"
)

// Client is a buffered TCP client handle.
//
// The zero state after New is unopened. Open connects it, Close releases the
// socket, and Open may be called again to reconnect with a fresh buffer.
// A Client is not goroutine-safe.
type Client struct {
	cfg    *Config
	logger logger.Logger

	sock   socket // nil while unopened
	remote string // "ip:port" of the last Open

	ring     *ringbuf.Buffer
	pushback pushback

	metrics ConnectionMetrics
}

// pushback is the byte ReadLine held back from a line that did not fit.
type pushback struct {
	value byte
	ok    bool
}

// New creates an unopened Client configured by opts.
func New(opts ...Option) (*Client, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:    cfg,
		logger: cfg.logger,
	}, nil
}

// Open connects to address:port, where address is a dotted-quad IPv4 literal
// or "localhost".
//
// Any connection still held by the client is closed first, and the read
// buffer and held-back line byte are discarded. The attempt is bounded by
// the configured connect timeout and by ctx. On failure the client is left
// unopened and the error wraps one of ErrPlatformInit, ErrAddressParse,
// ErrSocketCreate, ErrConnectTimeout, ErrConnectRejected or ErrConnectFailed.
func (c *Client) Open(ctx context.Context, address string, port uint16) error {
	if err := acquireSocket(); err != nil {
		c.metrics.incConnectFailCount()
		return err
	}
	attached := false
	defer func() {
		if !attached {
			releaseSocket()
		}
	}()

	if err := c.Close(); err != nil {
		c.logger.Warn("tcpclient: closing previous connection", "error", err)
	}
	c.resetBuffers()
	c.remote = ""
	c.logger = c.cfg.logger

	addr, err := parseAddress(address)
	if err != nil {
		c.metrics.incConnectFailCount()
		return err
	}
	c.remote = net.JoinHostPort(addr.String(), strconv.Itoa(int(port)))
	c.logger = c.cfg.logger.With("remote", c.remote)

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.connectTimeout)
	defer cancel()

	conn, err := c.cfg.dialer.DialContext(dialCtx, "tcp4", c.remote)
	if err != nil {
		err = classifyDialError(c.remote, err)
		c.metrics.incConnectFailCount()
		c.logger.Debug("tcpclient: connect failed", "error", err)

		return err
	}

	sock, err := newNetSocket(conn)
	if err != nil {
		var result error = fmt.Errorf("%w: %s: prepare socket: %w", ErrConnectFailed, c.remote, err)
		if closeErr := conn.Close(); closeErr != nil {
			result = multierror.Append(result, closeErr)
		}
		c.metrics.incConnectFailCount()
		c.logger.Debug("tcpclient: connect failed", "error", result)

		return result
	}

	attached = true
	c.attach(sock)
	c.metrics.incConnectCount()
	c.logger.Debug("tcpclient: connected",
		"localAddr", conn.LocalAddr(),
		"remoteAddr", conn.RemoteAddr())

	return nil
}

// attach installs an established socket. The caller holds a slot from
// acquireSocket, which Close gives back.
func (c *Client) attach(sock socket) {
	c.sock = sock
}

func (c *Client) resetBuffers() {
	if c.ring == nil {
		c.ring = ringbuf.New(c.cfg.bufferBits)
	} else {
		c.ring.Reset()
	}
	c.pushback = pushback{}
}

// Close releases the socket. Closing an unopened client is a no-op.
//
// Buffered bytes are kept until the next Open discards them, but they are not
// readable in between: Read and ReadLine on a closed client return ErrNotOpen.
// Buffered reports how many were left behind.
func (c *Client) Close() error {
	if c.sock == nil {
		return nil
	}

	err := c.sock.close()
	c.sock = nil
	releaseSocket()

	c.logger.Debug("tcpclient: closed")

	if err != nil {
		return fmt.Errorf("tcpclient: close %s: %w", c.remote, err)
	}

	return nil
}

// Write sends p on the connection, blocking until it is handed to the OS.
func (c *Client) Write(p []byte) (int, error) {
	if c.sock == nil {
		return 0, ErrNotOpen
	}

	n, err := c.sock.send(p)
	c.metrics.addBytesSent(n)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return n, nil
}

// IsOpen reports whether the client holds a connection.
func (c *Client) IsOpen() bool { return c.sock != nil }

// RemoteAddr returns the "ip:port" destination of the last Open, or "" if
// Open never got past address parsing.
func (c *Client) RemoteAddr() string { return c.remote }

// Buffered returns the number of received bytes waiting in the ring buffer.
func (c *Client) Buffered() int {
	if c.ring == nil {
		return 0
	}

	return c.ring.Len()
}

// Config returns the client configuration.
func (c *Client) Config() *Config { return c.cfg }

// Metrics returns the client's counters. It is safe to read concurrently.
func (c *Client) Metrics() *ConnectionMetrics { return &c.metrics }

// classifyDialError maps a dial failure to the connect error taxonomy.
func classifyDialError(remote string, err error) error {
	var sysErr *os.SyscallError

	switch {
	case errors.As(err, &sysErr) && sysErr.Syscall == "socket":
		return fmt.Errorf("%w: %s: %w", ErrSocketCreate, remote, err)
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return fmt.Errorf("%w: %s: %w", ErrConnectTimeout, remote, err)
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return fmt.Errorf("%w: %s: %w", ErrConnectRejected, remote, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrConnectFailed, remote, err)
	}
}
