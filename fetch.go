package sieve

import "fmt"

// Fetch is a convenience accessor over Get that turns absence into an
// error. It returns ErrNotFound (wrapped with the key) when the key is not
// cached; a hit behaves exactly like Get, including the visited mark.
func (c *Cache[K, V]) Fetch(key K) (V, error) {
	v, ok := c.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return v, nil
}

// Fetch is the SyncCache equivalent of Cache.Fetch.
func (c *SyncCache[K, V]) Fetch(key K) (V, error) {
	v, ok := c.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return v, nil
}
