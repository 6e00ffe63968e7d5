// Package resolver turns canonical entity keys into live values and
// composes the independent analysis engines into per-entity bundles.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/macrowatch/macrowatch/internal/anomaly"
	"github.com/macrowatch/macrowatch/internal/cache"
	"github.com/macrowatch/macrowatch/internal/datasources"
	"github.com/macrowatch/macrowatch/internal/graph"
	"github.com/macrowatch/macrowatch/internal/registry"
	"github.com/macrowatch/macrowatch/internal/scorecard"
	"github.com/macrowatch/macrowatch/internal/seasonality"
	"github.com/macrowatch/macrowatch/internal/valuation"
)

// ErrNoValue marks an entity that resolved to a catalog entry but has
// no currently determinable value. Callers must treat it as unknown,
// never as zero.
var ErrNoValue = errors.New("no current value")

// ResolvedValue is one live reading. Value is a float64 for numeric
// entities and a string for the few non-numeric ones (meeting dates).
// ChangePct is nil when the source carries no change information.
type ResolvedValue struct {
	Value     interface{} `json:"value"`
	Unit      string      `json:"unit"`
	ChangePct *float64    `json:"change_pct,omitempty"`
}

// Float returns the numeric value, false for non-numeric readings.
func (v ResolvedValue) Float() (float64, bool) {
	f, ok := v.Value.(float64)
	return f, ok
}

// Sources bundles every upstream collaborator the resolver dispatches
// to.
type Sources struct {
	Market     datasources.MarketSource
	Macro      datasources.MacroSource
	Turkey     datasources.TurkeySource
	CBRT       datasources.CBRTSource
	EquityRisk datasources.EquityRiskSource
	GoldCorr   datasources.GoldCorrSource
	Banking    datasources.BankingSource
	Sentiment  datasources.SentimentSource
	Trade      datasources.TradeSource
	History    datasources.HistorySource
}

// TTLs are the per-category cache lifetimes.
type TTLs struct {
	Market time.Duration
	Panels time.Duration
}

// DefaultTTLs returns the stock cache lifetimes: quotes go stale in a
// minute, slow-moving panels last five.
func DefaultTTLs() TTLs {
	return TTLs{Market: time.Minute, Panels: 5 * time.Minute}
}

// Resolver resolves entity levels and analysis bundles. All methods
// are safe for concurrent use; the only shared mutable state is the
// injected cache.
type Resolver struct {
	reg       *registry.Registry
	store     cache.Store
	src       Sources
	ttl       TTLs
	scanner   *anomaly.Scanner
	valuation *valuation.Engine
	graph     *graph.Walker
	seasonal  *seasonality.Engine
	scorecard *scorecard.Engine
}

// New wires the resolver and its dependent engines.
func New(reg *registry.Registry, store cache.Store, src Sources, ttl TTLs) *Resolver {
	r := &Resolver{reg: reg, store: store, src: src, ttl: ttl}

	r.scanner = anomaly.NewScanner(closesAdapter{src.History})
	r.valuation = valuation.New(reg, r)
	r.graph = graph.New(reg, r, r.scanner)
	r.seasonal = seasonality.New(src.History)
	r.scorecard = scorecard.New(scorecard.Sources{
		Macro:      src.Macro,
		Turkey:     src.Turkey,
		EquityRisk: src.EquityRisk,
		GoldCorr:   src.GoldCorr,
	}, store)
	return r
}

// Scanner exposes the anomaly scanner for direct checks.
func (r *Resolver) Scanner() *anomaly.Scanner { return r.scanner }

// Scorecard exposes the scorecard engine.
func (r *Resolver) Scorecard() *scorecard.Engine { return r.scorecard }

// Seasonality exposes the seasonality engine.
func (r *Resolver) Seasonality() *seasonality.Engine { return r.seasonal }

// Registry exposes the static catalog.
func (r *Resolver) Registry() *registry.Registry { return r.reg }

// closesAdapter narrows the history source to the close series the
// anomaly scanner needs.
type closesAdapter struct {
	src datasources.HistorySource
}

func (c closesAdapter) Closes(ctx context.Context, symbol, period string) ([]float64, error) {
	if c.src == nil {
		return nil, datasources.ErrUnavailable
	}
	candles, err := c.src.History(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	return datasources.Closes(candles), nil
}

// CurrentLevel resolves key to its live (value, unit, change%) triple.
// Returns registry.ErrNotFound for unknown keys and ErrNoValue when
// the entity exists but nothing currently backs it.
func (r *Resolver) CurrentLevel(ctx context.Context, key string) (ResolvedValue, error) {
	ent, err := r.reg.Resolve(key)
	if err != nil {
		return ResolvedValue{}, err
	}
	return r.EntryLevel(ctx, ent)
}

// EntryLevel is CurrentLevel for an already-resolved entry (or a
// synthetic one wrapping a raw ticker).
func (r *Resolver) EntryLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	switch ent.Source {
	case registry.SourceMarket:
		return r.marketLevel(ctx, ent)
	case registry.SourceMacro:
		return r.macroLevel(ctx, ent)
	case registry.SourceCBRT:
		return r.cbrtLevel(ctx, ent)
	case registry.SourceEquityRisk:
		return r.equityRiskLevel(ctx, ent)
	case registry.SourceGoldCorr:
		return r.goldCorrLevel(ctx, ent)
	case registry.SourceScorecard:
		return r.scorecardLevel(ctx, ent)
	case registry.SourceBanking:
		return r.panelLevel(ctx, ent, "banking_monitor", r.fetchBanking)
	case registry.SourceSentiment:
		return r.sentimentLevel(ctx, ent)
	case registry.SourceTrade:
		return r.panelLevel(ctx, ent, "trade", r.fetchTrade)
	default:
		return ResolvedValue{}, fmt.Errorf("%w: unhandled source %v", ErrNoValue, ent.Source)
	}
}

// Level implements graph.LevelResolver.
func (r *Resolver) Level(ctx context.Context, ent registry.Entry) (float64, float64, bool) {
	rv, err := r.EntryLevel(ctx, ent)
	if err != nil {
		return 0, 0, false
	}
	f, ok := rv.Float()
	if !ok {
		return 0, 0, false
	}
	chg := 0.0
	if rv.ChangePct != nil {
		chg = *rv.ChangePct
	}
	return f, chg, true
}

// NumericValue implements valuation.InputResolver.
func (r *Resolver) NumericValue(ctx context.Context, key string) (float64, bool) {
	rv, err := r.CurrentLevel(ctx, key)
	if err != nil {
		return 0, false
	}
	return rv.Float()
}
