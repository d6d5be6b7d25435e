package tcpclient

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/go-sensorlink/internal/pool"
)

// Line terminators recognized by ReadLine.
const (
	CR = '\r'
	LF = '\n'
)

// Read fills p with up to len(p) bytes and returns the count.
//
// Bytes come first from the ring buffer, then from whatever the OS has
// already queued (without blocking), and finally from one blocking receive
// bounded by timeout. A timeout <= 0 lets that receive wait indefinitely.
//
// A short count with a nil error means the timeout lapsed. io.EOF means the
// peer closed the stream; any bytes assembled before it are still returned.
//
// A closed client returns ErrNotOpen even if bytes are still buffered.
func (c *Client) Read(p []byte, timeout time.Duration) (int, error) {
	if c.sock == nil {
		return 0, ErrNotOpen
	}

	want := len(p)
	if want == 0 {
		return 0, nil
	}

	// Tier 1: ring buffer.
	got := c.ring.Read(p)
	if got == want {
		c.metrics.incBufferHitCount()
		return got, nil
	}

	// Tier 2: what the OS already holds, routed through the ring.
	drainErr := c.drain()
	got += c.ring.Read(p[got:])
	if got == want {
		return got, nil
	}
	if drainErr != nil {
		return c.finishRead(got, want, drainErr)
	}

	// Tier 3: one blocking receive for exactly the remainder.
	c.metrics.incBlockingReadCount()
	n, err := c.sock.recvWait(p[got:], timeout)
	c.metrics.addBytesRecv(n)
	got += n

	return c.finishRead(got, want, err)
}

// drain moves bytes already queued on the socket into the ring buffer.
func (c *Client) drain() error {
	free := c.ring.Free()
	if free == 0 {
		return nil
	}

	stage := pool.GetBuffer(free)
	defer pool.PutBuffer(stage)

	n, err := c.sock.recvNow(*stage)
	if n > 0 {
		c.metrics.addBytesRecv(n)
		c.ring.Write((*stage)[:n])
	}

	return err
}

func (c *Client) finishRead(got, want int, err error) (int, error) {
	if got < want {
		c.metrics.incShortReadCount()
	}

	switch {
	case err == nil:
		return got, nil
	case errors.Is(err, io.EOF):
		return got, io.EOF
	default:
		return got, fmt.Errorf("tcpclient: receive from %s: %w", c.remote, err)
	}
}

// ReadLine reads one line into buf and returns its length. The CR or LF
// terminator is consumed but not stored.
//
// At most len(buf)-1 bytes are returned. If buf fills before a terminator
// arrives, the last byte read is held back and becomes the first byte of
// the next call's line.
//
// An empty line returns (0, nil). When no byte could be obtained at all the
// error is the underlying read error, or ErrReadTimeout if the timeout lapsed.
// If the stream stalls mid-line, the partial line is returned with a nil
// error and the next call reports the stall.
func (c *Client) ReadLine(buf []byte, timeout time.Duration) (int, error) {
	if len(buf) < 2 {
		return 0, ErrBufferTooSmall
	}
	if c.sock == nil {
		return 0, ErrNotOpen
	}

	i := 0
	if c.pushback.ok {
		buf[i] = c.pushback.value
		i++
		c.pushback = pushback{}
	}

	var (
		ch         [1]byte
		readErr    error
		terminated bool
	)
	for i < len(buf) {
		n, err := c.Read(ch[:], timeout)
		if n <= 0 {
			readErr = err
			if readErr == nil {
				readErr = ErrReadTimeout
			}

			break
		}

		if ch[0] == CR || ch[0] == LF {
			terminated = true
			break
		}

		buf[i] = ch[0]
		i++
	}

	if i == len(buf) {
		i--
		c.pushback = pushback{value: buf[i], ok: true}
		c.metrics.incPushbackCount()
	}

	if i == 0 && readErr != nil {
		return 0, readErr
	}

	if terminated {
		c.metrics.incLineCount()
	}

	return i, nil
}
