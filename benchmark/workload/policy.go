// Package workload provides synthetic key workloads and a replay harness
// for comparing cache replacement policies.
package workload

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cachelab/sieve"
)

// Policy abstracts a cache replacement policy for hit-rate comparison.
// Values are irrelevant to replacement decisions, so policies store only
// key membership.
type Policy interface {
	// Name identifies the policy in reports.
	Name() string

	// Get probes the cache for key, reporting a hit.
	Get(key string) bool

	// Set inserts key, possibly evicting another entry.
	Set(key string)

	// Len returns the number of cached keys.
	Len() int
}

// Compile-time checks that the adapters implement Policy.
var (
	_ Policy = (*SievePolicy)(nil)
	_ Policy = (*LRUPolicy)(nil)
)

// SievePolicy adapts the sieve cache to the Policy interface.
type SievePolicy struct {
	cache *sieve.Cache[string, struct{}]
}

// NewSieve creates a SIEVE policy with the given capacity.
func NewSieve(capacity int) (*SievePolicy, error) {
	c, err := sieve.New[string, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &SievePolicy{cache: c}, nil
}

func (p *SievePolicy) Name() string { return "sieve" }

func (p *SievePolicy) Get(key string) bool {
	_, ok := p.cache.Get(key)
	return ok
}

func (p *SievePolicy) Set(key string) {
	p.cache.Set(key, struct{}{})
}

func (p *SievePolicy) Len() int { return p.cache.Len() }

// LRUPolicy adapts hashicorp/golang-lru as the comparison baseline.
type LRUPolicy struct {
	cache *lru.Cache[string, struct{}]
}

// NewLRU creates an LRU policy with the given capacity.
func NewLRU(capacity int) (*LRUPolicy, error) {
	c, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUPolicy{cache: c}, nil
}

func (p *LRUPolicy) Name() string { return "lru" }

func (p *LRUPolicy) Get(key string) bool {
	_, ok := p.cache.Get(key)
	return ok
}

func (p *LRUPolicy) Set(key string) {
	p.cache.Add(key, struct{}{})
}

func (p *LRUPolicy) Len() int { return p.cache.Len() }
