package sieve

import "sync"

// SyncCache is a Cache guarded by a single per-instance mutex, safe for
// concurrent use by multiple goroutines.
//
// Every operation that can touch mutable state takes the lock for its whole
// critical section; that includes Get, Contains and Len, since even reads
// interact with state the eviction scan mutates. SIEVE's per-operation work
// is O(1) amortized, so one coarse lock per instance is sufficient. Cap is
// immutable after construction and is read without the lock.
type SyncCache[K comparable, V any] struct {
	mu    sync.Mutex
	cache *Cache[K, V]
}

// NewSync creates a thread-safe cache holding at most capacity entries.
// Returns ErrInvalidCapacity if capacity is not positive.
func NewSync[K comparable, V any](capacity int, opts ...Option) (*SyncCache[K, V], error) {
	cache, err := New[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncCache[K, V]{cache: cache}, nil
}

// OnEvict registers an eviction callback. It must be set before the cache
// is shared between goroutines. The callback runs with the lock held.
func (c *SyncCache[K, V]) OnEvict(fn func(key K, value V)) {
	c.cache.OnEvict(fn)
}

// Cap returns the fixed capacity of the cache.
func (c *SyncCache[K, V]) Cap() int {
	return c.cache.Cap()
}

// Len returns the number of entries currently in the cache.
func (c *SyncCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// IsEmpty reports whether the cache holds no entries.
func (c *SyncCache[K, V]) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.IsEmpty()
}

// Contains reports whether key is in the cache, without marking it visited.
func (c *SyncCache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Contains(key)
}

// Get returns the value stored under key, marking the entry visited on a hit.
func (c *SyncCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(key)
}

// Peek returns the value stored under key without marking it visited.
func (c *SyncCache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Peek(key)
}

// Set stores value under key, returning true if a new entry was created.
func (c *SyncCache[K, V]) Set(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Set(key, value)
}

// Delete removes key from the cache, returning true if it was present.
func (c *SyncCache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Delete(key)
}

// Clear removes every entry. Capacity is unaffected.
func (c *SyncCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
}

// Keys returns the cached keys ordered by insertion time, newest first.
func (c *SyncCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Keys()
}
