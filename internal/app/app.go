// Package app assembles the pipeline from configuration: upstream
// clients, optional Redis history cache, optional Postgres override
// store, and the resolver on top.
package app

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/cache"
	"github.com/macrowatch/macrowatch/internal/config"
	"github.com/macrowatch/macrowatch/internal/datasources"
	"github.com/macrowatch/macrowatch/internal/registry"
	"github.com/macrowatch/macrowatch/internal/resolver"
	"github.com/macrowatch/macrowatch/internal/scorecard"
	"github.com/macrowatch/macrowatch/internal/store"
)

// upstreamSources names every breaker-guarded fetch category.
var upstreamSources = []string{
	"market", "history", "macro", "turkey_macro", "cbrt",
	"erp", "gold_corr", "banking", "sentiment", "trade",
}

// App is the wired pipeline.
type App struct {
	Cfg       *config.Config
	Resolver  *resolver.Resolver
	Overrides *store.Overrides

	rdb *redis.Client
}

// Build wires everything cfg enables. Redis and Postgres are optional;
// leaving them unconfigured just disables the history cache and the
// override endpoints.
func Build(cfg *config.Config) (*App, error) {
	client := datasources.NewClient(datasources.ClientConfig{
		Timeout:   cfg.Upstream.RequestTimeout.Std(),
		RPS:       cfg.Upstream.RatePerSec,
		Burst:     cfg.Upstream.RateBurst,
		UserAgent: cfg.Upstream.UserAgent,
	}, upstreamSources...)

	quotes := datasources.NewQuoteAPI(client, cfg.Upstream.QuoteBaseURL)
	gateway := datasources.NewGateway(client, cfg.Upstream.PanelBaseURL, cfg.Upstream.PanelAPIKey)

	a := &App{Cfg: cfg}

	var history datasources.HistorySource = quotes
	if cfg.Redis.Addr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		history = datasources.NewRedisHistory(quotes, a.rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis history cache enabled")
	}

	if cfg.Postgres.DSN != "" {
		overrides, err := store.Open(cfg.Postgres.DSN, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("open override store: %w", err)
		}
		a.Overrides = overrides
		log.Info().Msg("override store enabled")
	}

	a.Resolver = resolver.New(registry.New(), cache.NewMemory(), resolver.Sources{
		Market:     quotes,
		Macro:      gateway,
		Turkey:     gateway,
		CBRT:       gateway,
		EquityRisk: gateway,
		GoldCorr:   gateway,
		Banking:    gateway,
		Sentiment:  gateway,
		Trade:      gateway,
		History:    history,
	}, resolver.TTLs{
		Market: cfg.Cache.MarketTTL.Std(),
		Panels: cfg.Cache.PanelTTL.Std(),
	})

	if len(cfg.Scorecard.Weights) > 0 {
		weights := make(map[string]float64, len(scorecard.DefaultWeights))
		for k, v := range scorecard.DefaultWeights {
			weights[k] = v
		}
		for k, v := range cfg.Scorecard.Weights {
			weights[k] = v
		}
		a.Resolver.Scorecard().SetWeights(weights)
	}

	return a, nil
}

// Close releases the optional backends.
func (a *App) Close() error {
	var first error
	if a.Overrides != nil {
		if err := a.Overrides.Close(); err != nil {
			first = err
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
