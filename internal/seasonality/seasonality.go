// Package seasonality computes per-calendar-month return statistics
// from long-run monthly OHLC history.
package seasonality

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/macrowatch/macrowatch/internal/datasources"
)

// LongHistorySource supplies multi-year monthly candles.
type LongHistorySource interface {
	LongHistory(ctx context.Context, symbol string) ([]datasources.Candle, error)
}

// MonthStats aggregates one calendar month across all observed years.
type MonthStats struct {
	AvgReturn float64 `json:"avg_return"`
	WinRate   float64 `json:"win_rate"`
	Count     int     `json:"count"`
}

// Result is the full seasonality read for a symbol. Months without a
// single observation are absent from Monthly, never zero-filled.
type Result struct {
	Monthly      map[time.Month]MonthStats `json:"monthly_map"`
	Current      *MonthStats               `json:"current_month_stats,omitempty"`
	CurrentMonth string                    `json:"current_month_name"`
}

// Engine computes seasonality from a long-history source.
type Engine struct {
	history LongHistorySource
	now     func() time.Time
}

// New builds the engine.
func New(history LongHistorySource) *Engine {
	return &Engine{history: history, now: time.Now}
}

// Monthly groups (close-open)/open by calendar month across all years
// and reports mean return and win rate per month, plus the stats of
// the current calendar month.
func (e *Engine) Monthly(ctx context.Context, symbol string) (*Result, error) {
	candles, err := e.history.LongHistory(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("seasonality: %w", err)
	}

	byMonth := make(map[time.Month][]float64)
	for _, c := range candles {
		if c.Open <= 0 {
			continue
		}
		chg := (c.Close - c.Open) / c.Open * 100
		byMonth[c.Month] = append(byMonth[c.Month], chg)
	}

	monthly := make(map[time.Month]MonthStats, len(byMonth))
	for m, changes := range byMonth {
		wins := 0
		sum := 0.0
		for _, chg := range changes {
			sum += chg
			if chg > 0 {
				wins++
			}
		}
		monthly[m] = MonthStats{
			AvgReturn: round2(sum / float64(len(changes))),
			WinRate:   math.Round(float64(wins) / float64(len(changes)) * 100),
			Count:     len(changes),
		}
	}
	if len(monthly) == 0 {
		return nil, fmt.Errorf("seasonality: %w: no usable candles for %s", datasources.ErrUnavailable, symbol)
	}

	now := e.now()
	res := &Result{
		Monthly:      monthly,
		CurrentMonth: now.Month().String(),
	}
	if stats, ok := monthly[now.Month()]; ok {
		res.Current = &stats
	}
	return res, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
