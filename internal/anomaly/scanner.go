// Package anomaly classifies live readings against their recent
// history (sigma / black-swan alerts) and evaluates cross-asset
// divergence rules.
package anomaly

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/macrowatch/macrowatch/internal/analytics"
)

// AlertType tags the kind of alert.
type AlertType string

const (
	AlertSigma      AlertType = "SIGMA"
	AlertBlackSwan  AlertType = "BLACK_SWAN"
	AlertDivergence AlertType = "DIVERGENCE"
)

// Level tags alert severity.
type Level string

const (
	LevelWarning  Level = "WARNING"
	LevelCritical Level = "CRITICAL"
	LevelCaution  Level = "CAUTION"
)

// Alert is one triggered signal. ZScore is only set for statistical
// alerts.
type Alert struct {
	Type    AlertType `json:"type"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	ZScore  float64   `json:"z_score,omitempty"`
}

// HistorySource supplies a close series when the caller has none.
type HistorySource interface {
	Closes(ctx context.Context, symbol, period string) ([]float64, error)
}

const (
	// minSuppliedHistory is the point below which a caller-supplied
	// series is considered too thin and a fetch is attempted instead.
	minSuppliedHistory = 5
	// minUsableHistory is the hard floor for a meaningful z-score.
	minUsableHistory = 20

	sigmaThreshold     = 2.0
	blackSwanThreshold = 3.0
)

// Scanner runs the statistical checks. It is stateless apart from its
// collaborators and safe for concurrent use.
type Scanner struct {
	history HistorySource
	rules   []DivergenceRule
}

// NewScanner builds a scanner with the default divergence rule set.
// history may be nil, in which case callers must supply their own
// series.
func NewScanner(history HistorySource) *Scanner {
	return &Scanner{history: history, rules: DefaultDivergenceRules()}
}

// CheckAnomaly classifies current against history. When history is
// missing or too thin, a ~3-month daily close series for symbol is
// substituted. Fewer than 20 usable points means no signal: the nil
// return is "insufficient data", never "normal".
func (s *Scanner) CheckAnomaly(ctx context.Context, symbol string, current float64, history []float64) *Alert {
	hist := history
	if len(hist) < minSuppliedHistory && s.history != nil {
		fetched, err := s.history.Closes(ctx, symbol, "3mo")
		if err != nil {
			log.Debug().Err(err).Str("symbol", symbol).Msg("anomaly history fetch failed")
		} else {
			hist = fetched
		}
	}

	usable := 0
	for _, x := range hist {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			usable++
		}
	}
	if usable < minUsableHistory {
		return nil
	}

	z := analytics.ZScore(current, hist)
	switch {
	case math.Abs(z) >= blackSwanThreshold:
		return &Alert{
			Type:    AlertBlackSwan,
			Level:   LevelCritical,
			Message: fmt.Sprintf("3-SIGMA EVENT (%+.1fσ)", z),
			ZScore:  round2(z),
		}
	case math.Abs(z) >= sigmaThreshold:
		return &Alert{
			Type:    AlertSigma,
			Level:   LevelWarning,
			Message: fmt.Sprintf("Sigma Alert (%+.1fσ)", z),
			ZScore:  round2(z),
		}
	}
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
