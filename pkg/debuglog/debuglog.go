// Package debuglog keeps a bounded in-memory ring of structured diagnostic
// events plus a single "last request" summary slot. It backs the /debuglog
// endpoint and survives for the whole process lifetime until explicitly
// cleared.
package debuglog

import (
	"sync"
	"time"
)

// Default ring configuration constants.
const (
	defaultCapacity = 250
)

// Level classifies an entry.
type Level string

// Entry levels.
const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is a single recorded event. IDs are monotonically increasing and
// never reused, even across Clear.
type Entry struct {
	ID      uint64         `json:"id"`
	Level   Level          `json:"level"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	At      time.Time      `json:"at"`
}

// RequestSummary describes the most recent upstream fetch. It is overwritten
// on every request, not accumulated.
type RequestSummary struct {
	URL        string        `json:"url"`
	Label      string        `json:"label"`
	Status     int           `json:"status"`
	Duration   time.Duration `json:"duration"`
	CacheState string        `json:"cacheState"`
	Attempts   int           `json:"attempts"`
	Err        string        `json:"error,omitempty"`
	At         time.Time     `json:"at"`
}

// Log is a bounded FIFO ring of entries.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	start    int // index of the oldest entry
	count    int
	capacity int
	nextID   uint64
	last     *RequestSummary
	now      func() time.Time
}

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithCapacity bounds the number of retained entries.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Log with the default capacity of 250 entries.
func New(opts ...Option) *Log {
	l := &Log{
		capacity: defaultCapacity,
		nextID:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = make([]Entry, l.capacity)
	return l
}

// Record appends an entry, dropping the oldest one when the ring is full.
func (l *Log) Record(level Level, message string, details map[string]any) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		ID:      l.nextID,
		Level:   level,
		Message: message,
		Details: details,
		At:      l.now(),
	}
	l.nextID++

	idx := (l.start + l.count) % l.capacity
	l.entries[idx] = e
	if l.count < l.capacity {
		l.count++
	} else {
		l.start = (l.start + 1) % l.capacity
	}
	return e
}

// Entries returns the retained entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.entries[(l.start+i)%l.capacity]
	}
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// SetLastRequest overwrites the last-request summary slot.
func (l *Log) SetLastRequest(s RequestSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s.At.IsZero() {
		s.At = l.now()
	}
	l.last = &s
}

// LastRequest returns the most recent fetch summary, if any.
func (l *Log) LastRequest() (RequestSummary, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.last == nil {
		return RequestSummary{}, false
	}
	return *l.last, true
}

// Clear drops all entries and the last-request summary. The ID sequence
// keeps increasing so entries recorded after a clear remain distinguishable.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.start = 0
	l.count = 0
	l.last = nil
}
