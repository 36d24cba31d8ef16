package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	capacity int
	policies string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "sieve-bench",
	Short: "Compare cache replacement policies on synthetic and recorded workloads",
	Long: `sieve-bench replays key workloads through one or more cache replacement
policies and reports the hit rate of each.

Policies: sieve (this library) and lru (hashicorp/golang-lru baseline).

Examples:
  # Zipf-distributed synthetic workload
  sieve-bench run --capacity 1000 --requests 1000000 --workload zipf

  # Sequential scan, the adversarial case for plain LRU
  sieve-bench run --workload scan --keys 2000 --capacity 1000

  # Replay a recorded trace (plain or zstd-compressed, local or GCS)
  sieve-bench replay traces/web.txt.zst
  sieve-bench replay gs://my-bucket/traces/web.txt.zst`,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&capacity, "capacity", "c", 1024, "cache capacity in entries")
	rootCmd.PersistentFlags().StringVarP(&policies, "policies", "p", "sieve,lru", "comma-separated policies to compare")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
