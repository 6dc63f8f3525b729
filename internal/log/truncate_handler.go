package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DefaultMaxRunes is the default rune limit for string attribute values.
// Long enough to keep a flagged sentence readable, short enough that a
// section body cannot flood the log.
const DefaultMaxRunes = 200

// TruncateHandler wraps an slog.Handler and caps long string attribute
// values. Attributes carrying article text (sentences, section bodies,
// wikitext fragments) routinely run to kilobytes; truncating them keeps
// log lines scannable without dropping the attribute.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay oblivious; they attach full values and the
//     handler decides what survives
type TruncateHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxRunes is the rune limit for string attribute values.
	maxRunes int
}

// NewTruncateHandler creates a new TruncateHandler wrapping the given handler.
// If handler is nil, the returned TruncateHandler uses slog.Default().Handler().
// A maxRunes of zero or less uses DefaultMaxRunes.
func NewTruncateHandler(handler slog.Handler, maxRunes int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &TruncateHandler{handler: handler, maxRunes: maxRunes}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attributes and passes it to the underlying handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are capped before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cappedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cappedAttrs[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(cappedAttrs), maxRunes: h.maxRunes}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxRunes: h.maxRunes}
}

// truncateAttr caps a single attribute, recursively handling groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cappedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			cappedAttrs[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cappedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		if capped, ok := h.truncate(a.Value.String()); ok {
			return slog.String(a.Key, capped)
		}
	}

	return a
}

// truncate caps a string at the rune limit. The second return value
// reports whether truncation happened.
func (h *TruncateHandler) truncate(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) <= h.maxRunes {
		return s, false
	}
	return fmt.Sprintf("%s... (%d more runes)", string(runes[:h.maxRunes]), len(runes)-h.maxRunes), true
}

// NewLogger creates a new slog.Logger with text output and attribute
// truncation.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or
// passed to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxRunes))
}

// NewJSONLogger creates a new slog.Logger with JSON output and
// attribute truncation. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewTruncateHandler(jsonHandler, DefaultMaxRunes))
}
