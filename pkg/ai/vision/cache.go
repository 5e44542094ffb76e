package vision

import (
	"context"
	"fmt"
	"sync"
)

// CacheKey identifies one provider call inside a batch.
type CacheKey struct {
	DocumentID string
	Provider   string
	Run        int
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%d", k.DocumentID, k.Provider, k.Run)
}

// ResultCache remembers raw provider responses keyed by
// (document, provider, run) so a batch can be re-displayed or written back
// without re-invoking providers.
type ResultCache interface {
	Get(ctx context.Context, key CacheKey) (string, bool, error)
	Set(ctx context.Context, key CacheKey, value string) error
}

// MemoryCache is a session-scoped in-memory ResultCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[CacheKey]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[CacheKey]string)}
}

func (c *MemoryCache) Get(_ context.Context, key CacheKey) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key CacheKey, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}
