package curve

import "github.com/gogpu/halftone/internal/cache"

// Cache keeps Hilbert orders by grid size so that repeated calls on images of
// the same size skip the O(N²) curve walk.
//
// Cached slices are shared between callers and must be treated as read-only.
//
// Thread safety: Cache is safe for concurrent use.
type Cache struct {
	orders *cache.Cache[[2]int, []Step]
}

// DefaultCacheSize is the number of orders kept by the default cache.
const DefaultCacheSize = 16

var defaultCache = NewCache(DefaultCacheSize)

// NewCache creates a cache holding at most maxLen orders.
// A maxLen of 0 or less disables caching.
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		return &Cache{}
	}
	return &Cache{orders: cache.New[[2]int, []Step](maxLen)}
}

// Hilbert returns the Hilbert order for an h×w grid, computing and storing it
// on a miss.
func (c *Cache) Hilbert(h, w int) []Step {
	if c.orders == nil {
		return Hilbert(h, w)
	}
	return c.orders.GetOrCreate([2]int{h, w}, func() []Step {
		return Hilbert(h, w)
	})
}

// Len returns the number of cached orders.
func (c *Cache) Len() int {
	if c.orders == nil {
		return 0
	}
	return c.orders.Len()
}

// Stats returns hit and eviction counters of the cache.
func (c *Cache) Stats() cache.Stats {
	if c.orders == nil {
		return cache.Stats{}
	}
	return c.orders.Stats()
}

// CachedHilbert returns the Hilbert order for an h×w grid from the
// process-wide cache.
func CachedHilbert(h, w int) []Step {
	return defaultCache.Hilbert(h, w)
}
