package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// spoilerKeys contains attribute keys that always carry the answer.
var spoilerKeys = map[string]bool{
	"secret":        true,
	"secret_number": true,
	"secret_value":  true,
	"answer":        true,
	"solution":      true,
	"target":        true,
}

// spoilerKeywords are matched as substrings of lower-cased keys.
// "target" is deliberately only an exact key: it is too common as a suffix.
var spoilerKeywords = []string{"secret", "answer", "solution"}

// MaskValue is the string used to replace hidden values.
const MaskValue = "***HIDDEN***"

// RedactingHandler wraps an slog.Handler and masks attributes whose key
// reveals the secret value before the record reaches the wrapped handler.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler creates a RedactingHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

// Enabled reports whether the wrapped handler handles records at the given level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the wrapped handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(redact(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes masked and added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = redact(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

// redact masks a single attribute, recursing into groups.
func redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			masked[i] = redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if isSpoilerKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// isSpoilerKey reports whether an attribute key names the answer.
func isSpoilerKey(key string) bool {
	k := strings.ToLower(key)
	if spoilerKeys[k] {
		return true
	}
	for _, kw := range spoilerKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// NewLogger creates a text slog.Logger that hides the secret value.
// If verbose is true the level is Debug, otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON slog.Logger that hides the secret value.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
