// Package logger is the logging facade used by the go-sensorlink packages.
//
// Callers plug in any structured logger by implementing Logger. The package
// ships a log/slog based implementation (NewSlog) and a process-wide default
// instance reachable through the package-level functions.
//
// Levels, from most to least verbose:
//
//   - DebugLevel: per-call transport details (connect attempts, short reads).
//   - InfoLevel:  connection lifecycle.
//   - WarnLevel:  recoverable anomalies.
//   - ErrorLevel: failures the caller should look at.
//   - FatalLevel: logs then exits the process.
package logger

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs are verbose and usually disabled in production.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info but need no immediate action.
	WarnLevel
	// ErrorLevel logs are high priority.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// Logger is a leveled, key/value structured logger.
type Logger interface {
	// Debug logs msg at DebugLevel with alternating keys and values.
	Debug(msg string, keysAndValues ...any)
	// Info logs msg at InfoLevel with alternating keys and values.
	Info(msg string, keysAndValues ...any)
	// Warn logs msg at WarnLevel with alternating keys and values.
	Warn(msg string, keysAndValues ...any)
	// Error logs msg at ErrorLevel with alternating keys and values.
	Error(msg string, keysAndValues ...any)
	// Fatal logs msg at FatalLevel and then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
	// With returns a child logger carrying the given key/value context.
	// The parent is not affected.
	With(keyValues ...any) Logger
	// Level returns the minimum enabled level.
	Level() Level
	// SetLevel sets the minimum enabled level.
	SetLevel(level Level)
}
