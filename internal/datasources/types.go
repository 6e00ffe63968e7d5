// Package datasources defines the upstream collaborators the analysis
// core consumes, plus their HTTP implementations. Every fetcher runs
// behind a rate limiter and a circuit breaker; results are plain data
// structures that the resolver caches under fixed keys.
package datasources

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a collaborator that failed or returned nothing.
var ErrUnavailable = errors.New("upstream unavailable")

// Quote is one market instrument in the snapshot.
type Quote struct {
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// MarketSnapshot maps ticker symbols to live quotes.
type MarketSnapshot map[string]Quote

// CDSQuote is the sovereign CDS reading inside the macro panel.
type CDSQuote struct {
	Value     float64 `json:"val"`
	ChangePct float64 `json:"change_pct"`
}

// MacroPanel is the policy-rate / bond / CDS panel.
type MacroPanel struct {
	PolicyRates map[string]float64 `json:"policy_rates"`
	Bonds       map[string]float64 `json:"bonds"`
	CDS         *CDSQuote          `json:"cds,omitempty"`
}

// SeriesPoint is one Turkey macro series reading.
type SeriesPoint struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Last float64 `json:"last"`
	Unit string  `json:"unit"`
}

// CBRTState is the central-bank tracker panel.
type CBRTState struct {
	CurrentRate float64 `json:"current_rate"`
	NextMeeting string  `json:"next_meeting"`
}

// GoldCorr is the gold/FX correlation panel.
type GoldCorr struct {
	CorrUSD float64 `json:"corr_usd"`
}

// Candle is one OHLC observation; Month and Year are pre-split for
// seasonality grouping.
type Candle struct {
	Date  time.Time  `json:"date"`
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
	Open  float64    `json:"open"`
	Close float64    `json:"close"`
}

// MarketSource supplies the live quote snapshot.
type MarketSource interface {
	Snapshot(ctx context.Context) (MarketSnapshot, error)
}

// MacroSource supplies the policy/bond/CDS panel.
type MacroSource interface {
	Panel(ctx context.Context) (*MacroPanel, error)
}

// TurkeySource supplies the Turkey macro series list.
type TurkeySource interface {
	Series(ctx context.Context) ([]SeriesPoint, error)
}

// CBRTSource supplies the central-bank tracker state.
type CBRTSource interface {
	State(ctx context.Context) (*CBRTState, error)
}

// EquityRiskSource supplies the ERP panel (pe, erp, tr_10y).
type EquityRiskSource interface {
	ERP(ctx context.Context) (map[string]float64, error)
}

// GoldCorrSource supplies the gold/FX correlation.
type GoldCorrSource interface {
	Corr(ctx context.Context) (*GoldCorr, error)
}

// BankingSource supplies the banking monitor panel.
type BankingSource interface {
	Banking(ctx context.Context) (map[string]float64, error)
}

// SentimentSource supplies the sentiment panel.
type SentimentSource interface {
	Sentiment(ctx context.Context) (map[string]float64, error)
}

// TradeSource supplies the trade panel.
type TradeSource interface {
	Trade(ctx context.Context) (map[string]float64, error)
}

// HistorySource supplies historical candles. History returns roughly
// daily candles for the requested period ("3mo" and friends);
// LongHistory returns multi-year monthly candles for seasonality.
type HistorySource interface {
	History(ctx context.Context, symbol, period string) ([]Candle, error)
	LongHistory(ctx context.Context, symbol string) ([]Candle, error)
}
