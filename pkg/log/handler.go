package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler formats error attributes before passing records on. When an
// error carries a stack trace recorded by pkg/errors, the trace is attached
// as a separate stacktrace attribute so JSON log sinks can index it.
type ErrFmtHandler struct {
	slog.Handler
}

// WrapByErrFmtHandler wraps a handler with error formatting.
func WrapByErrFmtHandler(h slog.Handler) slog.Handler {
	return &ErrFmtHandler{Handler: h}
}

// Handle implements slog.Handler.
func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	nr := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == ErrAttrKey {
			if err, ok := attr.Value.Any().(error); ok {
				nr.AddAttrs(slog.String(ErrAttrKey, err.Error()))
				if trace := stacktrace(err); trace != "" {
					nr.AddAttrs(slog.String(StacktraceAttrKey, trace))
				}
				return true
			}
		}
		nr.AddAttrs(attr)
		return true
	})
	return h.Handler.Handle(ctx, nr)
}

// WithAttrs implements slog.Handler.
func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ErrFmtHandler) WithGroup(name string) slog.Handler {
	return &ErrFmtHandler{Handler: h.Handler.WithGroup(name)}
}

// stacktrace extracts the first recorded stack trace from an error chain,
// or returns "" when the error carries none.
func stacktrace(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) == 0 {
		return ""
	}
	return details[0]
}
