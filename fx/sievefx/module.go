// Package sievefx provides an fx module for a shared, thread-safe cache of
// byte values keyed by string.
package sievefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/cachelab/sieve"
	"github.com/cachelab/sieve/internal/stats"
	"github.com/cachelab/sieve/internal/stats/logger"
)

// Config holds configuration for the shared cache.
type Config struct {
	// Capacity is the maximum number of cached entries.
	// Default is 1024.
	Capacity int
}

// Module provides a shared cache.
// Requires a *zap.Logger and a Config to be provided.
var Module = fx.Module("sieve",
	fx.Provide(
		newStatsCollector,
		newCache,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("sieve.stats"))
}

// Params holds dependencies for creating the cache.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided cache.
type Result struct {
	fx.Out

	Cache *sieve.SyncCache[string, []byte]
}

func newCache(p Params) (Result, error) {
	capacity := p.Config.Capacity
	if capacity <= 0 {
		capacity = 1024
	}

	cache, err := sieve.NewSync[string, []byte](capacity,
		sieve.WithStats(p.Collector),
		sieve.WithLogger(p.Logger.Named("sieve")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			cache.Clear()
			return nil
		},
	})

	return Result{Cache: cache}, nil
}
