package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/openbooks/backend/internal/domain/report"
)

// MemoryCache implements report.Cache with an in-process map. Suitable
// for single-instance deployments and tests. Entries live until a
// prefix invalidation sweeps them out.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]string),
	}
}

// Get returns the cached value for key and whether it was present
func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]
	return value, ok, nil
}

// Set stores value under key
func (c *MemoryCache) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
	return nil
}

// InvalidatePrefix removes every entry whose key starts with prefix
func (c *MemoryCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of cached entries
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure MemoryCache implements report.Cache
var _ report.Cache = (*MemoryCache)(nil)
