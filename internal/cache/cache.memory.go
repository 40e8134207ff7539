// FilePath: internal/cache/cache.memory.go
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoryEntry struct {
	value     []byte
	tags      []string
	expiresAt time.Time
}

// MemoryCache is the in-process TagCache: a key→entry map with a
// secondary tag→keys index. Invalidation is a tag-indexed bulk key
// eviction.
type MemoryCache struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	tagIndex map[string]map[string]struct{}
	group    singleflight.Group
	// generation increments on every invalidation; a computation that
	// overlaps an invalidation of one of its tags is returned to the
	// caller but not cached, so the cache never holds a value computed
	// strictly before a write it should reflect.
	generation    uint64
	tagGeneration map[string]uint64

	now func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:       make(map[string]*memoryEntry),
		tagIndex:      make(map[string]map[string]struct{}),
		tagGeneration: make(map[string]uint64),
		now:           time.Now,
	}
}

func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, tags []string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check: a concurrent caller may have stored the value
		// between our miss and entering the flight.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		startGen := c.currentGeneration()
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, tags, ttl, value, startGen)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *MemoryCache) InvalidateTag(ctx context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.tagGeneration[tag] = c.generation

	for key := range c.tagIndex[tag] {
		c.evict(key)
	}
	delete(c.tagIndex, tag)
	return nil
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*memoryEntry)
	c.tagIndex = make(map[string]map[string]struct{})
	return nil
}

func (c *MemoryCache) lookup(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.evict(key)
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *MemoryCache) store(key string, tags []string, ttl time.Duration, value []byte, startGen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop the result if any of its tags was invalidated while the
	// computation was in flight.
	for _, tag := range tags {
		if c.tagGeneration[tag] > startGen {
			return
		}
	}

	c.entries[key] = &memoryEntry{
		value:     value,
		tags:      tags,
		expiresAt: c.now().Add(ttl),
	}
	for _, tag := range tags {
		keys, ok := c.tagIndex[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tagIndex[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// evict removes an entry and unlinks it from the tag index. Caller holds the lock.
func (c *MemoryCache) evict(key string) {
	entry, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, tag := range entry.tags {
		if keys, ok := c.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tagIndex, tag)
			}
		}
	}
}
