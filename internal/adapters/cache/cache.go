// Package cache provides the in-memory, process-lifetime caches backing the
// fetch layer: a TTL response cache keyed by canonical URL and a bounded
// per-(season,athlete) package cache.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/hashmark/spotlight/pkg/metrics"
)

// Entry is one cached payload plus its metadata. Owned exclusively by the
// cache; overwritten whole on refresh, never partially updated.
type Entry struct {
	Key       string
	Payload   json.RawMessage
	FetchedAt time.Time
	ExpiresAt time.Time
	Meta      map[string]string
}

// ResponseCache maps a canonical request URL to at most one Entry. Expiry is
// lazy: expired entries are treated as absent on the next Get and dropped.
// Errors are never cached.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// NewResponseCache creates an empty response cache.
func NewResponseCache(opts ...ResponseOption) *ResponseCache {
	c := &ResponseCache{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the live entry for key, if any. An expired entry is removed
// and reported as absent.
func (c *ResponseCache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		metrics.RecordCacheMiss()
		return nil, false
	}

	if c.now().After(e.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a Set may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().After(cur.ExpiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		metrics.RecordCacheMiss()
		return nil, false
	}

	metrics.RecordCacheHit()
	return e, true
}

// Set stores payload under key with the given ttl, overwriting any previous
// entry unconditionally.
func (c *ResponseCache) Set(key string, payload json.RawMessage, ttl time.Duration, meta map[string]string) {
	now := c.now()
	e := &Entry{
		Key:       key,
		Payload:   payload,
		FetchedAt: now,
		ExpiresAt: now.Add(ttl),
		Meta:      meta,
	}

	c.mu.Lock()
	c.entries[key] = e
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateResponseCacheSize(size)
}

// Len returns the number of stored entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every entry.
func (c *ResponseCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*Entry)
	c.mu.Unlock()
	metrics.UpdateResponseCacheSize(0)
}
