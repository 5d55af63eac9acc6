package diagnostics

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is a recorded diagnostic.
type Entry struct {
	Attrs   map[string]string
	Message string
	Origin  string
	Level   slog.Level
}

// Recorder is an slog.Handler keeping every record in memory. Derived
// handlers share the same store.
type Recorder struct {
	store *recordStore
	attrs []slog.Attr
	level slog.Level
}

type recordStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// Compile-time safety: *Recorder implements slog.Handler.
var _ slog.Handler = (*Recorder)(nil)

// NewRecorder creates a recorder keeping records at or above level.
func NewRecorder(level slog.Level) *Recorder {
	return &Recorder{
		store: &recordStore{},
		level: level,
	}
}

// Logger returns a logger writing to r.
func (r *Recorder) Logger() *slog.Logger {
	return slog.New(r)
}

// Enabled reports whether level passes the recorder's level.
func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level
}

// Handle records rec.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   make(map[string]string),
	}
	add := func(a slog.Attr) {
		if a.Key == OriginKey {
			e.Origin = a.Value.String()
			return
		}
		e.Attrs[a.Key] = a.Value.String()
	}
	for _, a := range r.attrs {
		add(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	r.store.mu.Lock()
	r.store.entries = append(r.store.entries, e)
	r.store.mu.Unlock()
	return nil
}

// WithAttrs returns a recorder sharing the store that adds attrs.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	r2 := *r
	r2.attrs = append(append([]slog.Attr{}, r.attrs...), attrs...)
	return &r2
}

// WithGroup is a no-op: recorded keys stay flat.
func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Entries returns a snapshot of all recorded entries.
func (r *Recorder) Entries() []Entry {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]Entry, len(r.store.entries))
	copy(out, r.store.entries)
	return out
}

// AtLevel returns the entries recorded exactly at level.
func (r *Recorder) AtLevel(level slog.Level) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Errors returns the Error level entries.
func (r *Recorder) Errors() []Entry {
	return r.AtLevel(slog.LevelError)
}

// Warnings returns the Warn level entries.
func (r *Recorder) Warnings() []Entry {
	return r.AtLevel(slog.LevelWarn)
}

// Messages returns the messages of all entries in order.
func (r *Recorder) Messages() []string {
	entries := r.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.store.mu.Lock()
	r.store.entries = nil
	r.store.mu.Unlock()
}
