//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package tcpclient

func (s *netSocket) recvNow(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	return s.recvPoll(p)
}
