// Package cache provides a small generic cache for values that are costly to
// build and safe to share, such as visiting orders keyed by image size.
package cache

import "sync"

// Cache is a generic thread-safe cache with a soft limit. When an insertion
// takes it past the limit, the least recently used quarter is evicted.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64 // monotonic access counter

	hits, misses, evictions uint64
}

type cacheEntry[V any] struct {
	value V
	atime int64
}

// New creates a cache with the given soft limit. A softLimit of 0 or less
// means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Get returns the value stored under key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.tick++
	entry.atime = c.tick
	return entry.value, true
}

// Set stores value under key, evicting old entries if needed.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// GetOrCreate returns the value under key, building it with create on a miss.
// create runs without the lock held, so concurrent misses on one key may
// each call it; the first stored value wins and is returned to all of them.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	value := create()

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		return entry.value
	}
	c.store(key, value)
	return value
}

// store inserts key. Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// evictOldest shrinks the cache to three quarters of the soft limit, oldest
// access first. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var oldest K
		first := true
		var atime int64
		for k, e := range c.entries {
			if first || e.atime < atime {
				oldest, atime, first = k, e.atime, false
			}
		}
		delete(c.entries, oldest)
		c.evictions++
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*cacheEntry[V])
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the soft limit.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
