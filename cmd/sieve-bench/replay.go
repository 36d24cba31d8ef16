package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cachelab/sieve/benchmark/trace"
	"github.com/cachelab/sieve/benchmark/workload"
)

var replayCmd = &cobra.Command{
	Use:   "replay [trace]",
	Short: "Replay a recorded key trace through the selected policies",
	Long: `Replay a recorded key trace through the selected policies and report
hit rates.

The trace holds one key per line; blank lines and '#' comments are ignored.
Traces ending in ".zst" are decompressed transparently. The trace may be a
local path or a gs://bucket/object GCS path.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := args[0]

	var keys []string
	var err error
	if strings.HasPrefix(path, "gs://") {
		bucket, object, splitErr := trace.SplitGCSPath(path)
		if splitErr != nil {
			return splitErr
		}
		keys, err = trace.LoadGCS(context.Background(), bucket, object)
	} else {
		keys, err = trace.Load(path)
	}
	if err != nil {
		return fmt.Errorf("loading trace: %w", err)
	}
	if len(keys) == 0 {
		return fmt.Errorf("trace %s holds no keys", path)
	}

	built, err := buildPolicies(policies, capacity)
	if err != nil {
		return err
	}

	results := workload.NewSimulator(built...).Run(keys)

	fmt.Printf("trace: %s, capacity: %d, requests: %d\n\n", path, capacity, len(keys))
	printResults(built, results)
	return nil
}
