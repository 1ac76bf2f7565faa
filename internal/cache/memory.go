package cache

import (
	"context"
	"sync"
	"time"

	"shareit/internal/models"
)

// MemorySearchCache — резервный кэш поиска в памяти процесса.
type MemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	items     []*models.Item
	expiresAt time.Time
}

func NewMemorySearchCache(ttl time.Duration) *MemorySearchCache {
	return &MemorySearchCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemorySearchCache) Get(ctx context.Context, key string) ([]*models.Item, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	if entry.items == nil {
		return []*models.Item{}, nil
	}
	return entry.items, nil
}

func (c *MemorySearchCache) Set(ctx context.Context, key string, items []*models.Item) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{items: items, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemorySearchCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
