package tcpclient

import (
	"fmt"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// netSubsystem is the process-wide network stack lifecycle. The Go runtime
// brings the stack up itself on every platform; the hooks mark the lifecycle
// so start-up runs once no matter how many clients open.
var netSubsystem struct {
	mu      sync.Mutex
	started bool
}

var (
	platformStartup = func() error { return nil }
	platformCleanup = func() error { return nil }
)

// openSockets counts live client sockets across the process.
var openSockets = xsync.NewCounter()

// acquireSocket starts the subsystem unless it already runs, and reserves a
// slot in the open-socket count under the same lock, so ShutdownNetwork
// refuses from the moment an Open begins. A failed start-up reserves nothing
// and is retried by the next call.
func acquireSocket() error {
	netSubsystem.mu.Lock()
	defer netSubsystem.mu.Unlock()

	if !netSubsystem.started {
		if err := platformStartup(); err != nil {
			return fmt.Errorf("%w: %w", ErrPlatformInit, err)
		}
		netSubsystem.started = true
	}
	openSockets.Inc()

	return nil
}

// releaseSocket gives back a slot taken by acquireSocket.
func releaseSocket() {
	openSockets.Dec()
}

// ShutdownNetwork tears down the process-wide network subsystem.
//
// It returns ErrSocketsInUse while any client is open. After a successful
// shutdown the next Open starts the subsystem again.
func ShutdownNetwork() error {
	netSubsystem.mu.Lock()
	defer netSubsystem.mu.Unlock()

	if n := openSockets.Value(); n > 0 {
		return fmt.Errorf("%w: %d", ErrSocketsInUse, n)
	}
	if !netSubsystem.started {
		return nil
	}

	if err := platformCleanup(); err != nil {
		return fmt.Errorf("tcpclient: network subsystem cleanup: %w", err)
	}
	netSubsystem.started = false

	return nil
}

// OpenSockets returns the number of client sockets currently open in the
// process.
func OpenSockets() int64 {
	return openSockets.Value()
}
