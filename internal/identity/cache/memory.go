package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

// MemoryCache is a process local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Account
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]domain.Account)}
}

func (c *MemoryCache) Get(_ context.Context, username string) (domain.Account, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.entries[username]
	if !ok {
		return domain.Account{}, false, nil
	}
	return clone(a), true, nil
}

func (c *MemoryCache) Set(_ context.Context, username string, a domain.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[username] = clone(a)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, username)
	return nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// clone copies the slice and pointer fields so callers cannot mutate a
// cached entry in place.
func clone(a domain.Account) domain.Account {
	a.Roles = slices.Clone(a.Roles)
	if a.Birthday != nil {
		b := *a.Birthday
		a.Birthday = &b
	}
	return a
}
