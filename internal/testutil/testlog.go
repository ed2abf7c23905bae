// Package testlog provides a logx.Logger that keeps entries in memory for assertions.
package testlog

import (
	"sync"

	"service-parcel/internal/logx"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value stored under key and whether it was present.
func (e Entry) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Recorder collects entries from every logger it hands out.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return recording{r: r}
}

// Entries returns a snapshot of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Find returns the first entry with the given level and message.
func (r *Recorder) Find(level, msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Level == level && e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

func (r *Recorder) record(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: append([]logx.Field(nil), fields...)})
}

type recording struct {
	r    *Recorder
	base []logx.Field
}

func (l recording) fields(extra []logx.Field) []logx.Field {
	out := make([]logx.Field, 0, len(l.base)+len(extra))
	return append(append(out, l.base...), extra...)
}

func (l recording) Debug(msg string, f ...logx.Field) { l.r.record("debug", msg, l.fields(f)) }
func (l recording) Info(msg string, f ...logx.Field)  { l.r.record("info", msg, l.fields(f)) }
func (l recording) Warn(msg string, f ...logx.Field)  { l.r.record("warn", msg, l.fields(f)) }
func (l recording) Error(msg string, f ...logx.Field) { l.r.record("error", msg, l.fields(f)) }

func (l recording) With(f ...logx.Field) logx.Logger {
	return recording{r: l.r, base: l.fields(f)}
}

func (l recording) Sync() error { return nil }

var _ logx.Logger = recording{}
