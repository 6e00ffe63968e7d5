package resolver

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/anomaly"
	"github.com/macrowatch/macrowatch/internal/graph"
	"github.com/macrowatch/macrowatch/internal/seasonality"
	"github.com/macrowatch/macrowatch/internal/valuation"
)

// Analysis is the full per-entity bundle: the live level plus every
// sub-analysis that applies to the entity. Sub-analyses are best
// effort; a failing one leaves its field nil and records the reason in
// Failures under its name, it never sinks the rest of the bundle.
type Analysis struct {
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Group       string              `json:"group"`
	Explain     string              `json:"explain,omitempty"`
	Level       *ResolvedValue      `json:"level,omitempty"`
	Alert       *anomaly.Alert      `json:"alert,omitempty"`
	Divergences []anomaly.Alert     `json:"divergences,omitempty"`
	Valuation   *valuation.Result   `json:"valuation,omitempty"`
	Impact      []graph.Row         `json:"impact,omitempty"`
	Seasonality *seasonality.Result `json:"seasonality,omitempty"`
	Failures    map[string]string   `json:"failures,omitempty"`
}

// Analyze resolves key and runs every applicable sub-analysis. The
// only hard error is an unknown key.
func (r *Resolver) Analyze(ctx context.Context, key string) (*Analysis, error) {
	ent, err := r.reg.Resolve(key)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Key:      ent.Key,
		Name:     ent.Name,
		Group:    ent.Group,
		Explain:  ent.Explain,
		Failures: map[string]string{},
	}

	rv, err := r.EntryLevel(ctx, ent)
	if err != nil {
		a.fail("level", err)
	} else {
		a.Level = &rv
	}

	// Everything downstream needs a numeric level.
	val, numeric := rv.Float()
	if a.Level == nil || !numeric {
		if len(a.Failures) == 0 {
			a.Failures = nil
		}
		return a, nil
	}

	if alert := r.scanner.CheckAnomaly(ctx, ent.TechnicalKey, val, nil); alert != nil {
		a.Alert = alert
	}

	if div := r.divergences(ctx, ent.Key, val, rv.ChangePct); len(div) > 0 {
		a.Divergences = div
	}

	if ent.Valuation != nil {
		a.Valuation = r.valuation.FairValue(ctx, ent.Key, val)
	}

	if len(ent.Correlations) > 0 {
		a.Impact = r.graph.ImpactChain(ctx, ent.Key)
	}

	if ent.Chartable && ent.TechnicalKey != "" {
		season, err := r.seasonal.Monthly(ctx, ent.TechnicalKey)
		if err != nil {
			a.fail("seasonality", err)
		} else {
			a.Seasonality = season
		}
	}

	if len(a.Failures) == 0 {
		a.Failures = nil
	}
	return a, nil
}

// divergences resolves the neighbors the rule table wants for key and
// runs the cross-asset checks. Neighbors that fail to resolve are
// silently skipped; a rule without its neighbor cannot fire.
func (r *Resolver) divergences(ctx context.Context, key string, current float64, changePct *float64) []anomaly.Alert {
	if changePct == nil {
		return nil
	}
	neighbors := r.scanner.RelatedKeys(key)
	if len(neighbors) == 0 {
		return nil
	}

	related := make(map[string]anomaly.Related, len(neighbors))
	for _, nk := range neighbors {
		nv, err := r.CurrentLevel(ctx, nk)
		if err != nil {
			log.Debug().Err(err).Str("neighbor", nk).Str("subject", key).
				Msg("divergence neighbor unresolved")
			continue
		}
		f, ok := nv.Float()
		if !ok {
			continue
		}
		rel := anomaly.Related{Value: f}
		if nv.ChangePct != nil {
			rel.ChangePct = *nv.ChangePct
		}
		related[nk] = rel
	}
	if len(related) == 0 {
		return nil
	}
	return r.scanner.CheckDivergence(key, current, *changePct, related)
}

func (a *Analysis) fail(part string, err error) {
	a.Failures[part] = err.Error()
}
