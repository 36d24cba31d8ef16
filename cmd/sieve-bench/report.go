package main

import (
	"fmt"
	"strings"

	"github.com/cachelab/sieve/benchmark/workload"
)

// buildPolicies creates the policies named in the comma-separated list.
func buildPolicies(names string, capacity int) ([]workload.Policy, error) {
	var out []workload.Policy
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "sieve":
			p, err := workload.NewSieve(capacity)
			if err != nil {
				return nil, fmt.Errorf("creating sieve policy: %w", err)
			}
			out = append(out, p)
		case "lru":
			p, err := workload.NewLRU(capacity)
			if err != nil {
				return nil, fmt.Errorf("creating lru policy: %w", err)
			}
			out = append(out, p)
		case "":
		default:
			return nil, fmt.Errorf("unknown policy %q", name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no policies selected")
	}
	return out, nil
}

// printResults prints one report line per policy, in the order requested.
func printResults(built []workload.Policy, results map[string]*workload.Result) {
	fmt.Printf("%-8s %12s %12s %12s %9s\n", "policy", "lookups", "hits", "misses", "hit rate")
	for _, p := range built {
		r := results[p.Name()]
		fmt.Printf("%-8s %12d %12d %12d %8.2f%%\n", r.PolicyName, r.Lookups, r.Hits, r.Misses, r.HitRate())
	}
	if verbose {
		for _, p := range built {
			fmt.Printf("%-8s final size: %d\n", p.Name(), results[p.Name()].FinalLen)
		}
	}
}
