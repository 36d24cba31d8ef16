// Package main provides the sieve-bench CLI tool for measuring cache
// hit rates under synthetic workloads and recorded key traces.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
