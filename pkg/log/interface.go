// Package log provides structured logging for goglm model fitting and
// evaluation.
//
// The package defines a minimal, slog-compatible Logger interface so that the
// backend can be swapped (JSON for production, tint console output for
// development, TestLogger for tests) without touching call sites. Fitting
// code attaches GLM-specific attributes (family, link, iteration counts,
// deviance) through the standard keys in attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("glm.irls")
//	logger.Info("fit converged",
//	    log.FamilyKey, "Poisson",
//	    log.IterationsKey, 6,
//	    log.DevianceKey, 98.32,
//	)
package log

import (
	"context"
)

// Logger is a structured logging interface compatible with Go's log/slog.
// Fields are alternating key-value pairs, as in slog.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is passed via ErrAttr, handlers may extract and
	// attach its stack trace.
	Error(msg string, fields ...any)

	// With returns a new Logger that includes the given fields in every
	// subsequent log record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to avoid building expensive attribute values that would be
	// discarded.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level. Values are compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It exists for dependency
// injection: production code uses the slog-backed default, tests install a
// TestLoggerProvider.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum level for loggers from this provider.
	SetLevel(level Level)
}
