package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// TestLogger is a Logger implementation for tests. Records are rendered to
// an in-memory buffer as JSON lines and can be inspected afterwards.
type TestLogger struct {
	mu     sync.Mutex
	buf    *bytes.Buffer
	logger *slog.Logger
}

// NewTestLogger creates a TestLogger that captures all levels.
func NewTestLogger() *TestLogger {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return &TestLogger{
		buf:    buf,
		logger: slog.New(handler),
	}
}

func (t *TestLogger) Debug(msg string, fields ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Debug(msg, fields...)
}

func (t *TestLogger) Info(msg string, fields ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Info(msg, fields...)
}

func (t *TestLogger) Warn(msg string, fields ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Warn(msg, fields...)
}

func (t *TestLogger) Error(msg string, fields ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Error(msg, fields...)
}

func (t *TestLogger) With(fields ...any) Logger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &TestLogger{
		buf:    t.buf,
		logger: t.logger.With(fields...),
	}
}

func (t *TestLogger) Enabled(ctx context.Context, level Level) bool {
	return t.logger.Enabled(ctx, slog.Level(level))
}

// GetLogEntries parses the captured output into one map per record.
func (t *TestLogger) GetLogEntries() []map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()

	var entries []map[string]any
	for _, line := range strings.Split(t.buf.String(), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// ContainsMessage reports whether any captured record has the given message.
func (t *TestLogger) ContainsMessage(msg string) bool {
	for _, entry := range t.GetLogEntries() {
		if m, ok := entry["msg"].(string); ok && m == msg {
			return true
		}
	}
	return false
}

// ContainsField reports whether any captured record carries the field with
// the given value. Numeric values are compared after JSON round-tripping,
// so integers should be passed as float64.
func (t *TestLogger) ContainsField(key string, value any) bool {
	for _, entry := range t.GetLogEntries() {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear drops all captured records.
func (t *TestLogger) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Reset()
}

// TestLoggerProvider is a LoggerProvider that hands out a single shared
// TestLogger. Install it with SetProvider to capture library logs in tests.
type TestLoggerProvider struct {
	logger *TestLogger
}

// NewTestLoggerProvider creates a provider with a fresh TestLogger.
func NewTestLoggerProvider() *TestLoggerProvider {
	return &TestLoggerProvider{logger: NewTestLogger()}
}

// GetLogger returns the shared test logger.
func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

// GetLoggerWithName returns the shared test logger tagged with a component
// name.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

// SetLevel is a no-op; the test logger records all levels.
func (p *TestLoggerProvider) SetLevel(level Level) {}

// TestLogger returns the underlying TestLogger for inspection.
func (p *TestLoggerProvider) TestLogger() *TestLogger {
	return p.logger
}
