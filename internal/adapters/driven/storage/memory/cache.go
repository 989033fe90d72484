// Package memory provides in-memory implementations of driven port
// interfaces, used when persistence is disabled and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.LookupCache = (*Cache)(nil)

// entry is one cached result set with its expiry.
type entry struct {
	results   []domain.LookupResult
	expiresAt time.Time
}

// Cache is an in-memory implementation of driven.LookupCache. Entries
// expire lazily on read; a zero TTL means entries never expire.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewCache creates a new in-memory lookup cache.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached results for the key, or ok=false on a miss or
// an expired entry.
func (c *Cache) Get(_ context.Context, key string) ([]domain.LookupResult, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	out := make([]domain.LookupResult, len(e.results))
	copy(out, e.results)
	return out, true, nil
}

// Put stores the results under the key.
func (c *Cache) Put(_ context.Context, key string, results []domain.LookupResult) error {
	stored := make([]domain.LookupResult, len(results))
	copy(stored, results)

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{results: stored, expiresAt: expiresAt}
	return nil
}

// Close clears the cache.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

// Len returns the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
