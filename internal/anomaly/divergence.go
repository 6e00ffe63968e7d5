package anomaly

import (
	"fmt"
	"math"
)

// Related is the live reading of a neighbor entity consulted by a
// divergence rule.
type Related struct {
	Value     float64
	ChangePct float64
}

// DivergenceRule is one declarative cross-asset check: when Subject is
// being analyzed and Related resolves, Trigger decides whether the
// combination is anomalous. Adding a rule is adding a table row.
type DivergenceRule struct {
	Subject string
	Related string
	Level   Level
	Trigger func(changePct float64, rel Related) bool
	Message func(rel Related) string
}

// DefaultDivergenceRules returns the built-in rule table.
func DefaultDivergenceRules() []DivergenceRule {
	return []DivergenceRule{
		{
			// Flat lira while credit risk spikes: stability is being
			// manufactured somewhere.
			Subject: "usdtry",
			Related: "cds",
			Level:   LevelWarning,
			Trigger: func(changePct float64, rel Related) bool {
				return math.Abs(changePct) < 0.1 && rel.ChangePct > 2.0
			},
			Message: func(rel Related) string {
				return fmt.Sprintf("Hidden Stress: Lira flat but CDS spiking (+%.1f%%)", rel.ChangePct)
			},
		},
		{
			// Equities rallying into rising global fear.
			Subject: "bist100",
			Related: "vix",
			Level:   LevelCaution,
			Trigger: func(changePct float64, rel Related) bool {
				return changePct > 1.0 && rel.ChangePct > 5.0
			},
			Message: func(rel Related) string {
				return fmt.Sprintf("Fragile Rally: BIST up despite Global Fear (VIX +%.1f%%)", rel.ChangePct)
			},
		},
	}
}

// RelatedKeys lists the neighbor keys the rule table needs for key, so
// the caller knows what to resolve before calling CheckDivergence.
func (s *Scanner) RelatedKeys(key string) []string {
	var out []string
	for _, r := range s.rules {
		if r.Subject == key {
			out = append(out, r.Related)
		}
	}
	return out
}

// CheckDivergence evaluates every rule whose subject is key against
// the supplied neighbor readings and returns all triggered alerts,
// or nil when nothing fires.
func (s *Scanner) CheckDivergence(key string, current, changePct float64, related map[string]Related) []Alert {
	var alerts []Alert
	for _, r := range s.rules {
		if r.Subject != key {
			continue
		}
		rel, ok := related[r.Related]
		if !ok {
			continue
		}
		if r.Trigger(changePct, rel) {
			alerts = append(alerts, Alert{
				Type:    AlertDivergence,
				Level:   r.Level,
				Message: r.Message(rel),
			})
		}
	}
	return alerts
}
