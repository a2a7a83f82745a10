// Package querycache keeps the results of read queries by key until they are
// invalidated, so views re-fetch only after something changed.
package querycache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value interface{}
	stale bool
	gen   uint64
}

// Cache is safe for concurrent use. Concurrent fetches of one key share a
// single call.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{
		entries: map[string]*entry{},
		gens:    map[string]uint64{},
	}
}

// Fetch returns the cached value for key, calling fn when the key is missing
// or stale. Errors are not cached.
func (c *Cache) Fetch(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		c.mu.Unlock()
		return e.value, nil
	}
	gen := c.gens[key]
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// An invalidation that raced the fetch leaves the result stale.
		c.entries[key] = &entry{value: value, gen: gen, stale: c.gens[key] != gen}
		c.mu.Unlock()
		return value, nil
	})
	return v, err
}

// Invalidate marks key stale; the next Fetch calls through.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
}

// IsStale reports whether key has no fresh value.
func (c *Cache) IsStale(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return !ok || e.stale
}

// Peek returns the last value for key, fresh or not.
func (c *Cache) Peek(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}
