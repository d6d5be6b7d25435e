package logger

import "sync"

var (
	defMu     sync.RWMutex
	defLogger Logger = NewSlog(InfoLevel, false)
)

// GetLogger returns the process-wide default logger. Clients configured
// without an explicit logger use it.
func GetLogger() Logger {
	defMu.RLock()
	defer defMu.RUnlock()

	return defLogger
}

// SetLogger replaces the process-wide default logger. A nil l is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}

	defMu.Lock()
	defLogger = l
	defMu.Unlock()
}

// SetLevel sets the level of the process-wide default logger.
func SetLevel(level Level) {
	GetLogger().SetLevel(level)
}
