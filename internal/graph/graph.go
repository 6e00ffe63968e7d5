// Package graph walks the static correlation lists of the registry and
// scores each neighbor's live reaction.
package graph

import (
	"context"

	"github.com/macrowatch/macrowatch/internal/anomaly"
	"github.com/macrowatch/macrowatch/internal/registry"
)

// LevelResolver supplies a neighbor's live numeric level. ok is false
// when no value is currently resolvable.
type LevelResolver interface {
	Level(ctx context.Context, ent registry.Entry) (value float64, changePct float64, ok bool)
}

// Row is one neighbor in an impact chain. Status is "No Data" when the
// link exists but the neighbor could not be resolved.
type Row struct {
	Key       string         `json:"key"`
	Name      string         `json:"name"`
	Price     float64        `json:"price,omitempty"`
	ChangePct float64        `json:"change_pct"`
	ZScore    float64        `json:"z_score"`
	Status    string         `json:"status,omitempty"`
	Alert     *anomaly.Alert `json:"alert,omitempty"`
}

// Walker resolves impact chains.
type Walker struct {
	reg     *registry.Registry
	levels  LevelResolver
	scanner *anomaly.Scanner
}

// New builds a walker.
func New(reg *registry.Registry, levels LevelResolver, scanner *anomaly.Scanner) *Walker {
	return &Walker{reg: reg, levels: levels, scanner: scanner}
}

// ImpactChain returns the correlated neighbors of key in the order the
// registry declares them, each with its live level and anomaly state.
// An entity without correlations yields an empty chain.
func (w *Walker) ImpactChain(ctx context.Context, key string) []Row {
	ent, err := w.reg.Resolve(key)
	if err != nil || len(ent.Correlations) == 0 {
		return nil
	}

	chain := make([]Row, 0, len(ent.Correlations))
	for _, linked := range ent.Correlations {
		neighbor, err := w.reg.Resolve(linked)
		if err != nil {
			// Raw ticker that never made it into the catalog: wrap it
			// as a synthetic market entity so it can still resolve.
			neighbor = registry.Entry{
				Key:          linked,
				Name:         linked,
				TechnicalKey: linked,
				Source:       registry.SourceMarket,
			}
		}

		val, chg, ok := w.levels.Level(ctx, neighbor)
		if !ok {
			chain = append(chain, Row{
				Key:    neighbor.Key,
				Name:   neighbor.Name,
				Status: "No Data",
			})
			continue
		}

		row := Row{
			Key:       neighbor.Key,
			Name:      neighbor.Name,
			Price:     val,
			ChangePct: chg,
		}
		if alert := w.scanner.CheckAnomaly(ctx, neighbor.TechnicalKey, val, nil); alert != nil {
			row.ZScore = alert.ZScore
			row.Alert = alert
		}
		chain = append(chain, row)
	}
	return chain
}
