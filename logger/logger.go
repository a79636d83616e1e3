// Package logger defines the logging interface used by the go-diap packages and
// a log/slog backed default implementation.
//
// Every component takes a Logger through its options so that applications can
// route responder output into their own logging framework. When no logger is
// configured the package-level default returned by GetLogger is used.
//
// Log Levels:
//
//   - DebugLevel: per-command dispatch details, disabled by default.
//   - InfoLevel: lifecycle events such as store loads and port open/close.
//   - WarnLevel: rejected frames and overflowing responses.
//   - ErrorLevel: transport and ingestion failures.
//   - FatalLevel: unrecoverable start-up errors; the process exits.
package logger

import (
	"fmt"
	"strings"
)

// Level indicates the logging severity level.
type Level = int8

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// Logger defines a common interface for logging with key-value pairs.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel.
	Error(msg string, keysAndValues ...any)
	// Fatal logs a message at FatalLevel, then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
	// With creates a child logger and adds structured context to it.
	// Key-values added to the child don't affect the parent, and vice versa.
	With(keyValues ...any) Logger
	// Level returns the minimum enabled level for this logger.
	Level() Level
	// SetLevel sets the minimum enabled level for this logger.
	SetLevel(level Level)
}

// ParseLevel converts a level name ("debug", "info", "warn", "error", "fatal")
// into a Level. Matching is case-insensitive and "warning" is accepted.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("logger: unknown level %q", name)
	}
}
