package workload

// Simulator replays a key sequence through a set of policies and collects
// per-policy hit statistics.
type Simulator struct {
	policies []Policy
}

// NewSimulator creates a Simulator over the given policies.
func NewSimulator(policies ...Policy) *Simulator {
	return &Simulator{policies: policies}
}

// Run replays keys through every policy. A probe that misses inserts the
// key, mimicking a read-through cache.
func (s *Simulator) Run(keys []string) map[string]*Result {
	results := make(map[string]*Result, len(s.policies))

	for _, policy := range s.policies {
		result := &Result{PolicyName: policy.Name()}

		for _, key := range keys {
			result.Lookups++
			if policy.Get(key) {
				result.Hits++
			} else {
				result.Misses++
				policy.Set(key)
			}
		}

		result.FinalLen = policy.Len()
		results[policy.Name()] = result
	}

	return results
}

// Result contains hit statistics for one policy over one workload.
type Result struct {
	PolicyName string
	Lookups    int
	Hits       int
	Misses     int
	FinalLen   int
}

// HitRate returns the hit rate as a percentage.
func (r *Result) HitRate() float64 {
	if r.Lookups == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Lookups) * 100
}
