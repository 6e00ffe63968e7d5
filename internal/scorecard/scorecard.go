// Package scorecard aggregates the independent macro signals into one
// weighted composite with a risk-on / neutral / risk-off label. Each
// component maps a raw reading through a fixed threshold ladder to a
// score in [-1, 1]; components that cannot be computed are excluded
// from both the numerator and the normalizing weight sum.
package scorecard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/cache"
	"github.com/macrowatch/macrowatch/internal/datasources"
	"github.com/macrowatch/macrowatch/internal/metrics"
)

// Component is one scored signal.
type Component struct {
	Score  float64 `json:"score"`
	Value  string  `json:"value"`
	Signal string  `json:"signal"`
}

// Result is the full scorecard.
type Result struct {
	Scores    map[string]Component `json:"scores"`
	Composite float64              `json:"composite"`
	Signal    string               `json:"signal"`
	Available int                  `json:"metrics_available"`
	Total     int                  `json:"metrics_total"`
}

// DefaultWeights is the component weighting of the composite.
var DefaultWeights = map[string]float64{
	"yield_curve": 0.20,
	"real_carry":  0.20,
	"ppi_cpi_gap": 0.10,
	"erp":         0.20,
	"cds":         0.20,
	"gold_corr":   0.10,
}

// Sources are the upstream panels the scorecard reads.
type Sources struct {
	Macro      datasources.MacroSource
	Turkey     datasources.TurkeySource
	EquityRisk datasources.EquityRiskSource
	GoldCorr   datasources.GoldCorrSource
}

// panelTTL bounds how long a fetched panel is reused.
const panelTTL = 5 * time.Minute

// Engine computes scorecards. Fetch results go through the shared
// cache under the same keys the resolver uses, so a scorecard run and
// an entity resolution never fetch the same panel twice inside a TTL.
type Engine struct {
	src     Sources
	store   cache.Store
	weights map[string]float64
}

// New builds the engine with the default weights.
func New(src Sources, store cache.Store) *Engine {
	return &Engine{
		src:     src,
		store:   store,
		weights: DefaultWeights,
	}
}

// SetWeights overrides the component weights (config-driven).
func (e *Engine) SetWeights(w map[string]float64) {
	if len(w) > 0 {
		e.weights = w
	}
}

// Compute builds the scorecard from whatever panels are currently
// available. It never fails outright: with zero available components
// the composite is 0 and the label NEUTRAL.
func (e *Engine) Compute(ctx context.Context) *Result {
	panel := e.macroPanel(ctx)
	series := e.turkeySeries(ctx)
	erp := e.erpPanel(ctx)
	corr := e.goldCorr(ctx)

	scores := make(map[string]Component)

	if c, ok := scoreYieldCurve(panel); ok {
		scores["yield_curve"] = c
	}
	if c, ok := scoreRealCarry(panel, series); ok {
		scores["real_carry"] = c
	}
	if c, ok := scorePPICPIGap(series); ok {
		scores["ppi_cpi_gap"] = c
	}
	if c, ok := scoreERP(erp); ok {
		scores["erp"] = c
	}
	if c, ok := scoreCDS(panel, series); ok {
		scores["cds"] = c
	}
	if c, ok := scoreGoldCorr(corr); ok {
		scores["gold_corr"] = c
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for key, w := range e.weights {
		c, ok := scores[key]
		if !ok {
			continue
		}
		weightedSum += c.Score * w
		totalWeight += w
	}

	composite := 0.0
	if totalWeight > 0 {
		composite = math.Round(weightedSum/totalWeight*1000) / 10
	}

	signal := "NEUTRAL"
	switch {
	case composite > 25:
		signal = "RISK-ON"
	case composite <= -25:
		signal = "RISK-OFF"
	}

	return &Result{
		Scores:    scores,
		Composite: composite,
		Signal:    signal,
		Available: len(scores),
		Total:     len(e.weights),
	}
}

func (e *Engine) macroPanel(ctx context.Context) *datasources.MacroPanel {
	if v, ok := e.store.Get("macro", panelTTL); ok {
		metrics.CacheHit("macro")
		if p, ok := v.(*datasources.MacroPanel); ok {
			return p
		}
	}
	metrics.CacheMiss("macro")
	p, err := e.src.Macro.Panel(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("scorecard: macro panel unavailable")
		return nil
	}
	e.store.Put("macro", p)
	return p
}

func (e *Engine) turkeySeries(ctx context.Context) []datasources.SeriesPoint {
	if v, ok := e.store.Get("turkey_macro", panelTTL); ok {
		metrics.CacheHit("turkey_macro")
		if pts, ok := v.([]datasources.SeriesPoint); ok {
			return pts
		}
	}
	metrics.CacheMiss("turkey_macro")
	pts, err := e.src.Turkey.Series(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("scorecard: turkey series unavailable")
		return nil
	}
	e.store.Put("turkey_macro", pts)
	return pts
}

func (e *Engine) erpPanel(ctx context.Context) map[string]float64 {
	if v, ok := e.store.Get("erp", panelTTL); ok {
		metrics.CacheHit("erp")
		if m, ok := v.(map[string]float64); ok {
			return m
		}
	}
	metrics.CacheMiss("erp")
	m, err := e.src.EquityRisk.ERP(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("scorecard: erp panel unavailable")
		return nil
	}
	e.store.Put("erp", m)
	return m
}

func (e *Engine) goldCorr(ctx context.Context) *datasources.GoldCorr {
	if v, ok := e.store.Get("gold_corr", panelTTL); ok {
		metrics.CacheHit("gold_corr")
		if gc, ok := v.(*datasources.GoldCorr); ok {
			return gc
		}
	}
	metrics.CacheMiss("gold_corr")
	gc, err := e.src.GoldCorr.Corr(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("scorecard: gold correlation unavailable")
		return nil
	}
	e.store.Put("gold_corr", gc)
	return gc
}

func findSeries(series []datasources.SeriesPoint, key string) (float64, bool) {
	for _, p := range series {
		if p.Key == key {
			return p.Last, true
		}
	}
	return 0, false
}

func fmtPct(v float64) string  { return fmt.Sprintf("%.2f%%", v) }
func fmtPct1(v float64) string { return fmt.Sprintf("%.1f%%", v) }
func fmtPts(v float64) string  { return fmt.Sprintf("%.1f pts", v) }
func fmtBps(v float64) string  { return fmt.Sprintf("%.0f bps", v) }
func fmtCorr(v float64) string { return fmt.Sprintf("%.2f", v) }
