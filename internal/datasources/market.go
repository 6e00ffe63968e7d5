package datasources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Symbols fetched into every market snapshot. Gram gold is derived,
// not fetched: XAU/USD x USDTRY / grams-per-troy-ounce.
var snapshotSymbols = []string{
	"XU100.IS", "XU030.IS", "^GSPC", "^DJI", "^IXIC", "^GDAXI", "^FTSE", "^N225", "^RUT", "^VIX",
	"TRY=X", "EURTRY=X", "GBPTRY=X", "DX-Y.NYB",
	"GC=F", "SI=F", "BZ=F", "CL=F", "NG=F",
	"BTC-USD", "ETH-USD",
}

const gramsPerTroyOunce = 31.1035

// QuoteAPI is a Yahoo-quote-shaped market data gateway.
type QuoteAPI struct {
	client  *Client
	baseURL string
}

// NewQuoteAPI builds the market source against baseURL.
func NewQuoteAPI(client *Client, baseURL string) *QuoteAPI {
	return &QuoteAPI{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol    string  `json:"symbol"`
			Price     float64 `json:"regularMarketPrice"`
			ChangePct float64 `json:"regularMarketChangePercent"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Snapshot fetches the full quote map in one batched request and
// derives the gram-gold cross from gold and USDTRY.
func (q *QuoteAPI) Snapshot(ctx context.Context) (MarketSnapshot, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		q.baseURL, url.QueryEscape(strings.Join(snapshotSymbols, ",")))

	var resp quoteResponse
	if err := q.client.GetJSON(ctx, "market", u, &resp); err != nil {
		return nil, err
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: market: empty quote response", ErrUnavailable)
	}

	snap := make(MarketSnapshot, len(resp.QuoteResponse.Result)+1)
	for _, r := range resp.QuoteResponse.Result {
		snap[r.Symbol] = Quote{Price: r.Price, ChangePct: r.ChangePct}
	}

	if gold, ok := snap["GC=F"]; ok {
		if try, ok := snap["TRY=X"]; ok && try.Price > 0 {
			snap["gram_gold"] = Quote{
				Price:     gold.Price * try.Price / gramsPerTroyOunce,
				ChangePct: gold.ChangePct + try.ChangePct,
			}
		}
	}
	return snap, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// History fetches daily candles for the given period ("3mo", "1y", ...).
func (q *QuoteAPI) History(ctx context.Context, symbol, period string) ([]Candle, error) {
	return q.chart(ctx, symbol, period, "1d")
}

// LongHistory fetches ten years of monthly candles for seasonality.
func (q *QuoteAPI) LongHistory(ctx context.Context, symbol string) ([]Candle, error) {
	return q.chart(ctx, symbol, "10y", "1mo")
}

func (q *QuoteAPI) chart(ctx context.Context, symbol, rng, interval string) ([]Candle, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		q.baseURL, url.PathEscape(symbol), rng, interval)

	var resp chartResponse
	if err := q.client.GetJSON(ctx, "history", u, &resp); err != nil {
		return nil, err
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: history: empty chart for %s", ErrUnavailable, symbol)
	}

	res := resp.Chart.Result[0]
	bars := res.Indicators.Quote[0]

	candles := make([]Candle, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(bars.Close) || bars.Close[i] == nil {
			continue
		}
		open := 0.0
		if i < len(bars.Open) && bars.Open[i] != nil {
			open = *bars.Open[i]
		}
		date := time.Unix(ts, 0).UTC()
		candles = append(candles, Candle{
			Date:  date,
			Month: date.Month(),
			Year:  date.Year(),
			Open:  open,
			Close: *bars.Close[i],
		})
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: history: no usable candles for %s", ErrUnavailable, symbol)
	}
	return candles, nil
}

// Closes extracts the close series from candles.
func Closes(candles []Candle) []float64 {
	out := make([]float64, 0, len(candles))
	for _, c := range candles {
		out = append(out, c.Close)
	}
	return out
}
