package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryReportCache implements ReportCache with a process-local map.
// Suitable for single-instance deployments and testing; entries are not
// shared across processes.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewInMemoryReportCache creates an empty in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached payload for a key, or false on miss or expiry
func (c *InMemoryReportCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set stores a payload with a TTL
func (c *InMemoryReportCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Invalidate drops a cached payload
func (c *InMemoryReportCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

var _ ReportCache = (*InMemoryReportCache)(nil)
