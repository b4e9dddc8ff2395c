package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/mdanassaif/bigNweirdwords/internal/models"
)

// Cache stores successful definition lookups keyed by lowercase word.
// Implementations treat backend failures as misses.
type Cache interface {
	Get(ctx context.Context, word string) (models.DefinitionEntry, bool)
	Set(ctx context.Context, word string, entry models.DefinitionEntry)
}

// MemoryCache is the process-wide definition cache. Entries live for the
// lifetime of the process and are never evicted.
type MemoryCache struct {
	entries map[string]models.DefinitionEntry
	mu      sync.RWMutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]models.DefinitionEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, word string) (models.DefinitionEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, exists := c.entries[strings.ToLower(word)]
	return entry, exists
}

func (c *MemoryCache) Set(_ context.Context, word string, entry models.DefinitionEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.ToLower(word)] = entry
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
