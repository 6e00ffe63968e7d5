package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/macrowatch/macrowatch/internal/datasources"
	"github.com/macrowatch/macrowatch/internal/metrics"
	"github.com/macrowatch/macrowatch/internal/registry"
	"github.com/macrowatch/macrowatch/internal/scorecard"
)

// cached returns the snapshot stored under key, or lazily populates it
// via fetch. The cache's own mutex only guards the map access inside
// Get/Put; the fetch always runs outside it, so a slow upstream never
// blocks unrelated lookups.
func (r *Resolver) cached(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if v, ok := r.store.Get(key, ttl); ok {
		metrics.CacheHit(key)
		return v, nil
	}
	metrics.CacheMiss(key)

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.store.Put(key, v)
	return v, nil
}

func noValue(ent registry.Entry, where string) error {
	return fmt.Errorf("%w: %s has no reading in %s", ErrNoValue, ent.Key, where)
}

func (r *Resolver) marketLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "market", r.ttl.Market, func(ctx context.Context) (interface{}, error) {
		return r.src.Market.Snapshot(ctx)
	})
	if err != nil {
		return ResolvedValue{}, err
	}
	snap, ok := v.(datasources.MarketSnapshot)
	if !ok {
		return ResolvedValue{}, noValue(ent, "market")
	}

	q, ok := snap[ent.TechnicalKey]
	if !ok {
		return ResolvedValue{}, noValue(ent, "market")
	}
	chg := q.ChangePct
	return ResolvedValue{Value: q.Price, Unit: ent.Unit, ChangePct: &chg}, nil
}

// Bond sub-fields stored as fractional points on the wire; the jump to
// basis points happens here, not upstream.
var bpsScaledBonds = map[string]bool{
	"risk_premium": true,
	"tr_curve":     true,
}

func (r *Resolver) macroLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "macro", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.Macro.Panel(ctx)
	})
	if err == nil {
		if panel, ok := v.(*datasources.MacroPanel); ok {
			if rate, ok := panel.PolicyRates[ent.TechnicalKey]; ok {
				return ResolvedValue{Value: rate, Unit: "%"}, nil
			}
			if bond, ok := panel.Bonds[ent.TechnicalKey]; ok {
				if bpsScaledBonds[ent.TechnicalKey] {
					return ResolvedValue{Value: bond * 100, Unit: "bps"}, nil
				}
				return ResolvedValue{Value: bond, Unit: "%"}, nil
			}
			if ent.TechnicalKey == "cds" && panel.CDS != nil {
				chg := panel.CDS.ChangePct
				return ResolvedValue{Value: panel.CDS.Value, Unit: "bps", ChangePct: &chg}, nil
			}
		}
	}

	// Fall through to the Turkey macro series list: a number of macro
	// entities live there rather than on the rate/bond panel.
	sv, serr := r.cached(ctx, "turkey_macro", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.Turkey.Series(ctx)
	})
	if serr != nil {
		if err != nil {
			return ResolvedValue{}, err
		}
		return ResolvedValue{}, noValue(ent, "macro")
	}
	series, ok := sv.([]datasources.SeriesPoint)
	if !ok {
		return ResolvedValue{}, noValue(ent, "macro")
	}
	for _, p := range series {
		if p.Key == ent.Key || p.Key == ent.TechnicalKey {
			return ResolvedValue{Value: p.Last, Unit: p.Unit}, nil
		}
	}
	return ResolvedValue{}, noValue(ent, "macro")
}

func (r *Resolver) cbrtLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "cbrt_tracker", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.CBRT.State(ctx)
	})
	if err != nil {
		return ResolvedValue{}, err
	}
	st, ok := v.(*datasources.CBRTState)
	if !ok {
		return ResolvedValue{}, noValue(ent, "cbrt")
	}

	switch ent.TechnicalKey {
	case "policy_rate":
		return ResolvedValue{Value: st.CurrentRate, Unit: "%"}, nil
	case "next_meeting":
		if st.NextMeeting == "" {
			return ResolvedValue{}, noValue(ent, "cbrt")
		}
		return ResolvedValue{Value: st.NextMeeting, Unit: ""}, nil
	}
	return ResolvedValue{}, noValue(ent, "cbrt")
}

func (r *Resolver) equityRiskLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "erp", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.EquityRisk.ERP(ctx)
	})
	if err != nil {
		return ResolvedValue{}, err
	}
	panel, ok := v.(map[string]float64)
	if !ok {
		return ResolvedValue{}, noValue(ent, "equity_risk")
	}

	if val, ok := panel[ent.TechnicalKey]; ok {
		unit := ent.Unit
		if unit == "" {
			unit = "%"
		}
		return ResolvedValue{Value: val, Unit: unit}, nil
	}

	// tr_10y sits on the equity risk panel but the macro bond board
	// also carries it; fall back there when the panel omits it.
	if mv, merr := r.cached(ctx, "macro", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.Macro.Panel(ctx)
	}); merr == nil {
		if mp, ok := mv.(*datasources.MacroPanel); ok {
			if bond, ok := mp.Bonds[ent.TechnicalKey]; ok {
				return ResolvedValue{Value: bond, Unit: "%"}, nil
			}
		}
	}
	return ResolvedValue{}, noValue(ent, "equity_risk")
}

func (r *Resolver) goldCorrLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "gold_corr", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.GoldCorr.Corr(ctx)
	})
	if err != nil {
		return ResolvedValue{}, err
	}
	gc, ok := v.(*datasources.GoldCorr)
	if !ok {
		return ResolvedValue{}, noValue(ent, "gold_corr")
	}
	return ResolvedValue{Value: gc.CorrUSD, Unit: ""}, nil
}

func (r *Resolver) scorecardLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "scorecard", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.scorecard.Compute(ctx), nil
	})
	if err != nil {
		return ResolvedValue{}, err
	}
	res, ok := v.(*scorecard.Result)
	if !ok {
		return ResolvedValue{}, noValue(ent, "scorecard")
	}
	return ResolvedValue{Value: res.Composite, Unit: "pts"}, nil
}

func (r *Resolver) sentimentLevel(ctx context.Context, ent registry.Entry) (ResolvedValue, error) {
	v, err := r.cached(ctx, "sentiment", r.ttl.Panels, func(ctx context.Context) (interface{}, error) {
		return r.src.Sentiment.Sentiment(ctx)
	})
	if err != nil {
		return ResolvedValue{}, err
	}
	panel, ok := v.(map[string]float64)
	if !ok {
		return ResolvedValue{}, noValue(ent, "sentiment")
	}

	// Panels report "<key>_score"; the registry keeps the bare key.
	if val, ok := panel[ent.TechnicalKey+"_score"]; ok {
		return ResolvedValue{Value: val, Unit: ent.Unit}, nil
	}
	if val, ok := panel[ent.TechnicalKey]; ok {
		return ResolvedValue{Value: val, Unit: ent.Unit}, nil
	}
	return ResolvedValue{}, noValue(ent, "sentiment")
}

func (r *Resolver) panelLevel(ctx context.Context, ent registry.Entry, cacheKey string, fetch func(context.Context) (interface{}, error)) (ResolvedValue, error) {
	v, err := r.cached(ctx, cacheKey, r.ttl.Panels, fetch)
	if err != nil {
		return ResolvedValue{}, err
	}
	panel, ok := v.(map[string]float64)
	if !ok {
		return ResolvedValue{}, noValue(ent, cacheKey)
	}
	if val, ok := panel[ent.TechnicalKey]; ok {
		return ResolvedValue{Value: val, Unit: ent.Unit}, nil
	}
	return ResolvedValue{}, noValue(ent, cacheKey)
}

func (r *Resolver) fetchBanking(ctx context.Context) (interface{}, error) {
	return r.src.Banking.Banking(ctx)
}

func (r *Resolver) fetchTrade(ctx context.Context) (interface{}, error) {
	return r.src.Trade.Trade(ctx)
}
