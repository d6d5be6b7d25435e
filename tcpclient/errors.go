package tcpclient

import "errors"

// Connection-phase errors. Open wraps the underlying cause, so both the kind
// and the cause match with errors.Is.
var (
	ErrPlatformInit    = errors.New("tcpclient: network subsystem start-up failed")
	ErrAddressParse    = errors.New("tcpclient: invalid IPv4 address")
	ErrSocketCreate    = errors.New("tcpclient: socket creation failed")
	ErrConnectFailed   = errors.New("tcpclient: connect failed")
	ErrConnectTimeout  = errors.New("tcpclient: connect timeout")
	ErrConnectRejected = errors.New("tcpclient: connection rejected by peer")
)

// I/O-phase errors.
var (
	ErrNotOpen        = errors.New("tcpclient: client is not open")
	ErrWrite          = errors.New("tcpclient: write failed")
	ErrReadTimeout    = errors.New("tcpclient: no data before read timeout")
	ErrBufferTooSmall = errors.New("tcpclient: line buffer must hold at least 2 bytes")
)

// ErrSocketsInUse is returned by ShutdownNetwork while clients are open.
var ErrSocketsInUse = errors.New("tcpclient: sockets still open")
