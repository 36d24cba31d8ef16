// Package sieve provides a bounded in-memory key-value cache that evicts
// entries with the SIEVE replacement policy.
//
// SIEVE approximates recency with one visited bit per entry and a single
// persistent scan cursor, so reads never reorder the underlying list and
// every operation is O(1) amortized. Capacity is fixed at construction.
//
// Example usage:
//
//	cache, err := sieve.New[string, string](1000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache.Set("foo", "foocontent")
//	if v, ok := cache.Get("foo"); ok {
//	    fmt.Println(v)
//	}
//
// A Cache is not safe for concurrent use; use NewSync for a cache shared
// between goroutines.
package sieve

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cachelab/sieve/internal/engine"
	"github.com/cachelab/sieve/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidCapacity indicates the requested capacity was not positive.
	ErrInvalidCapacity = engine.ErrInvalidCapacity

	// ErrNotFound indicates the key was absent. It is returned only by
	// Fetch; Get, Peek and Delete report absence through their boolean
	// result instead.
	ErrNotFound = errors.New("sieve: key not found")
)

// Cache is a fixed-capacity key-value cache with SIEVE eviction.
//
// Get marks the entry visited, protecting it from the next pass of the
// eviction scan; Peek and Contains do not. A Cache must not be used from
// multiple goroutines without external synchronization; see SyncCache.
type Cache[K comparable, V any] struct {
	engine  *engine.Engine[K, V]
	stats   stats.Collector
	logger  *zap.Logger
	onEvict func(key K, value V)
}

// New creates a cache holding at most capacity entries.
// Returns ErrInvalidCapacity if capacity is not positive.
func New[K comparable, V any](capacity int, opts ...Option) (*Cache[K, V], error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	eng, err := engine.New[K, V](capacity)
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		engine: eng,
		stats:  cfg.stats,
		logger: cfg.logger,
	}
	eng.OnEvict(func(key K, value V) {
		c.stats.IncCounter(stats.MetricEvictions, 1)
		c.logger.Debug("entry evicted", zap.Any("key", key))
		if c.onEvict != nil {
			c.onEvict(key, value)
		}
	})

	c.logger.Debug("cache initialized", zap.Int("capacity", capacity))
	return c, nil
}

// OnEvict registers a callback invoked with every entry discarded by the
// eviction scan. It must be set before the cache is used.
func (c *Cache[K, V]) OnEvict(fn func(key K, value V)) {
	c.onEvict = fn
}

// Cap returns the fixed capacity of the cache.
func (c *Cache[K, V]) Cap() int {
	return c.engine.Cap()
}

// Len returns the number of entries currently in the cache.
func (c *Cache[K, V]) Len() int {
	return c.engine.Len()
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V]) IsEmpty() bool {
	return c.engine.Len() == 0
}

// Contains reports whether key is in the cache, without marking it visited.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.engine.Contains(key)
}

// Get returns the value stored under key. A hit marks the entry visited,
// granting it a second chance against eviction.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.engine.Get(key)
	if ok {
		c.stats.IncCounter(stats.MetricHits, 1)
	} else {
		c.stats.IncCounter(stats.MetricMisses, 1)
	}
	return v, ok
}

// Peek returns the value stored under key without marking it visited and
// without touching the hit/miss counters.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	return c.engine.Peek(key)
}

// Set stores value under key and returns true if a new entry was created,
// false if an existing entry was updated in place. An update marks the
// entry visited. When the cache is full, inserting a new key first evicts
// exactly one entry, so Len() never exceeds Cap().
func (c *Cache[K, V]) Set(key K, value V) bool {
	added := c.engine.Set(key, value)
	c.stats.SetGauge(stats.MetricEntries, int64(c.engine.Len()))
	return added
}

// Delete removes key from the cache, returning true if it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	ok := c.engine.Delete(key)
	if ok {
		c.stats.SetGauge(stats.MetricEntries, int64(c.engine.Len()))
	}
	return ok
}

// Clear removes every entry. Capacity is unaffected.
func (c *Cache[K, V]) Clear() {
	c.engine.Clear()
	c.stats.SetGauge(stats.MetricEntries, 0)
	c.logger.Debug("cache cleared")
}

// Keys returns the cached keys ordered by insertion time, newest first.
// Reads do not affect the order.
func (c *Cache[K, V]) Keys() []K {
	return c.engine.Keys()
}
