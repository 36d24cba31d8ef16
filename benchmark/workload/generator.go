package workload

import (
	"fmt"
	"math/rand"
)

// Generator produces a deterministic sequence of cache keys.
type Generator interface {
	// Name identifies the access pattern in reports.
	Name() string

	// Keys generates n keys.
	Keys(n int) []string
}

// Compile-time checks that the generators implement Generator.
var (
	_ Generator = (*Uniform)(nil)
	_ Generator = (*Zipf)(nil)
	_ Generator = (*Scan)(nil)
)

// Uniform draws keys uniformly at random from a fixed keyspace.
type Uniform struct {
	keyspace int
	rng      *rand.Rand
}

// NewUniform creates a uniform generator over keyspace distinct keys.
func NewUniform(keyspace int, seed int64) *Uniform {
	return &Uniform{
		keyspace: keyspace,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (g *Uniform) Name() string { return "uniform" }

func (g *Uniform) Keys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", g.rng.Intn(g.keyspace))
	}
	return keys
}

// Zipf draws keys from a Zipf distribution, modeling the skewed access
// patterns typical of real cache workloads.
type Zipf struct {
	keyspace int
	s        float64
	zipf     *rand.Zipf
}

// NewZipf creates a Zipf generator over keyspace distinct keys with
// skew parameter s (must be > 1).
func NewZipf(keyspace int, s float64, seed int64) *Zipf {
	rng := rand.New(rand.NewSource(seed))
	return &Zipf{
		keyspace: keyspace,
		s:        s,
		zipf:     rand.NewZipf(rng, s, 1, uint64(keyspace-1)),
	}
}

func (g *Zipf) Name() string { return "zipf" }

func (g *Zipf) Keys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", g.zipf.Uint64())
	}
	return keys
}

// Scan cycles sequentially through the keyspace. A looping scan larger
// than the cache is the classic adversarial pattern for recency-based
// policies.
type Scan struct {
	keyspace int
	next     int
}

// NewScan creates a sequential looping scan over keyspace distinct keys.
func NewScan(keyspace int) *Scan {
	return &Scan{keyspace: keyspace}
}

func (g *Scan) Name() string { return "scan" }

func (g *Scan) Keys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", g.next)
		g.next = (g.next + 1) % g.keyspace
	}
	return keys
}
