package diagnostics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// OriginKey is the attribute naming the operation that emitted a record.
const OriginKey = "origin"

// LineHandler writes one line per record:
//
//	[WARNING] 2026-1-7 9:4:2.15: ResourceBuilder.Load: message key=value
//
// Records below the threshold are dropped. Each line is written with a
// single Write call under a lock shared by all derived handlers, so lines
// from concurrent builders never interleave.
type LineHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	now    func() time.Time
	attrs  []slog.Attr
	prefix string
}

// Compile-time safety: *LineHandler implements slog.Handler.
var _ slog.Handler = (*LineHandler)(nil)

// NewLineHandler creates a line handler writing to w. A nil level means
// slog.LevelInfo.
func NewLineHandler(w io.Writer, level slog.Leveler) *LineHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &LineHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		now:   time.Now,
	}
}

// Enabled reports whether level passes the threshold.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes r.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}

	var origin string
	var rest []string
	collect := func(prefix string, a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			return
		}
		if a.Key == OriginKey && prefix == "" {
			origin = a.Value.String()
			return
		}
		rest = appendAttr(rest, prefix, a)
	}
	// Handler attrs already carry their group prefix.
	for _, a := range h.attrs {
		collect("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(h.prefix, a)
		return true
	})

	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(LevelLabel(r.Level))
	sb.WriteString("] ")
	sb.WriteString(FormatTimestamp(ts))
	sb.WriteString(": ")
	if origin != "" {
		sb.WriteString(origin)
		sb.WriteString(": ")
	}
	sb.WriteString(r.Message)
	for _, kv := range rest {
		sb.WriteByte(' ')
		sb.WriteString(kv)
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a handler that adds attrs to every line.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	h2.attrs = append(h2.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return &h2
}

// WithGroup returns a handler that qualifies later keys with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(dst []string, prefix string, a slog.Attr) []string {
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, prefix, ga)
		}
		return dst
	}
	return append(dst, fmt.Sprintf("%s%s=%s", prefix, a.Key, quoteIfNeeded(a.Value.String())))
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
