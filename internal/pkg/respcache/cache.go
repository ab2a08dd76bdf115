// Package respcache provides small bounded response caches for read-heavy
// list and aggregate endpoints. Entries expire after a fixed TTL measured
// from insertion and the oldest-inserted entry is evicted when the cache is
// full (FIFO, not LRU).
package respcache

import (
	"sync"
	"time"
)

// Cache is a bounded TTL cache keyed by the logically significant request
// parameters of an endpoint (category filter, course id, limit), never the
// full URL.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]entry
	order    []string // insertion order, oldest first
	now      func() time.Time
}

type entry struct {
	payload    []byte
	insertedAt time.Time
}

// New creates a cache holding at most capacity entries, each valid for ttl
// after insertion.
func New(ttl time.Duration, capacity int) *Cache {
	if capacity <= 0 {
		capacity = 25
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]entry, capacity),
		now:      time.Now,
	}
}

// Get returns the cached payload for key, or (nil, false) when absent or
// expired. Expired entries are removed on lookup.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		c.remove(key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key, evicting the oldest-inserted entry when the
// cache is at capacity. Re-setting an existing key refreshes its payload and
// timestamp but keeps its original insertion-order position.
func (c *Cache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.capacity {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{payload: payload, insertedAt: c.now()}
}

// Invalidate drops the entry for key if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

// Flush drops every entry. Used by write paths that change the data a whole
// cache is derived from.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry, c.capacity)
	c.order = c.order[:0]
}

// Len reports the number of stored entries, including not-yet-collected
// expired ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from both the map and the insertion-order slice.
// Callers must hold c.mu.
func (c *Cache) remove(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
