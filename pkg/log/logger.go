package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/lmittmann/tint"
)

// levelVar backs the dynamic level of the handlers installed by SetupLogger
// and SetupConsoleLogger.
var levelVar = new(slog.LevelVar)

// SetupLogger installs a JSON slog handler as the process default logger.
// Attribute keys are renamed to the CloudLogging convention so fit logs can
// be ingested directly.
func SetupLogger(loglevel string) {
	levelVar.Set(slog.Level(ToLogLevel(loglevel)))
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     levelVar,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(os.Stdout, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// SetupConsoleLogger installs a human-readable tint handler as the process
// default logger, for interactive use and examples.
func SetupConsoleLogger(loglevel string) {
	levelVar.Set(slog.Level(ToLogLevel(loglevel)))
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      levelVar,
		TimeFormat: "15:04:05",
	})
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a Level. Valid names are debug, info,
// warn and error.
func ToLogLevel(level string) Level {
	switch level {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	// ErrAttrKey is the attribute key under which errors are logged.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the attribute key under which ErrFmtHandler
	// attaches extracted stack traces.
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps an error for structured logging.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// slogProvider is the default LoggerProvider, backed by slog.Default so it
// respects SetupLogger / SetupConsoleLogger.
type slogProvider struct{}

func (slogProvider) GetLogger() Logger {
	return &slogLogger{l: slog.Default()}
}

func (slogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{l: slog.Default().With(ComponentKey, name)}
}

func (slogProvider) SetLevel(level Level) {
	levelVar.Set(slog.Level(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = slogProvider{}
)

// DefaultProvider returns the slog-backed provider installed at startup.
func DefaultProvider() LoggerProvider {
	return slogProvider{}
}

// SetProvider replaces the package-level LoggerProvider. Tests install a
// TestLoggerProvider here to capture fitting logs.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a component-tagged logger from the current
// provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}
