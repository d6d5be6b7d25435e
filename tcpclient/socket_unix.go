//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package tcpclient

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// recvNow issues a single MSG_DONTWAIT receive on the raw descriptor.
func (s *netSocket) recvNow(p []byte) (int, error) {
	if s.raw == nil {
		return s.recvPoll(p)
	}
	if len(p) == 0 {
		return 0, nil
	}

	var (
		n       int
		recvErr error
	)
	err := s.raw.Read(func(fd uintptr) bool {
		n, _, recvErr = unix.Recvfrom(int(fd), p, unix.MSG_DONTWAIT)
		return true // never park in the poller
	})
	if err != nil {
		return 0, err
	}

	switch {
	case errors.Is(recvErr, unix.EAGAIN), errors.Is(recvErr, unix.EWOULDBLOCK), errors.Is(recvErr, unix.EINTR):
		return 0, nil
	case recvErr != nil:
		return 0, os.NewSyscallError("recvfrom", recvErr)
	case n == 0:
		return 0, io.EOF
	}

	return n, nil
}
