package datasources

import (
	"context"
	"fmt"
	"strings"
)

// Gateway serves the non-market panels from a single JSON data gateway
// (the EVDS/CBRT aggregation service). Each panel lives on its own
// path and decodes straight into the wire type.
type Gateway struct {
	client  *Client
	baseURL string
	apiKey  string
}

// NewGateway builds the panel source against baseURL. apiKey may be
// empty for gateways that do not require one.
func NewGateway(client *Client, baseURL, apiKey string) *Gateway {
	return &Gateway{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (g *Gateway) url(path string) string {
	u := g.baseURL + path
	if g.apiKey != "" {
		u += "?key=" + g.apiKey
	}
	return u
}

// Panel fetches the policy-rate / bond / CDS panel.
func (g *Gateway) Panel(ctx context.Context) (*MacroPanel, error) {
	var p MacroPanel
	if err := g.client.GetJSON(ctx, "macro", g.url("/macro/panel"), &p); err != nil {
		return nil, err
	}
	if len(p.PolicyRates) == 0 && len(p.Bonds) == 0 && p.CDS == nil {
		return nil, fmt.Errorf("%w: macro: empty panel", ErrUnavailable)
	}
	return &p, nil
}

// Series fetches the Turkey macro series list.
func (g *Gateway) Series(ctx context.Context) ([]SeriesPoint, error) {
	var pts []SeriesPoint
	if err := g.client.GetJSON(ctx, "turkey_macro", g.url("/macro/turkey"), &pts); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: turkey_macro: empty series", ErrUnavailable)
	}
	return pts, nil
}

// State fetches the CBRT tracker.
func (g *Gateway) State(ctx context.Context) (*CBRTState, error) {
	var st CBRTState
	if err := g.client.GetJSON(ctx, "cbrt", g.url("/cbrt/tracker"), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ERP fetches the equity-risk panel (pe, erp, tr_10y).
func (g *Gateway) ERP(ctx context.Context) (map[string]float64, error) {
	return g.panel(ctx, "erp", "/equity/risk")
}

// Corr fetches the gold/FX correlation.
func (g *Gateway) Corr(ctx context.Context) (*GoldCorr, error) {
	var gc GoldCorr
	if err := g.client.GetJSON(ctx, "gold_corr", g.url("/gold/correlation"), &gc); err != nil {
		return nil, err
	}
	return &gc, nil
}

// Banking fetches the banking monitor panel.
func (g *Gateway) Banking(ctx context.Context) (map[string]float64, error) {
	return g.panel(ctx, "banking", "/banking/monitor")
}

// Sentiment fetches the sentiment panel.
func (g *Gateway) Sentiment(ctx context.Context) (map[string]float64, error) {
	return g.panel(ctx, "sentiment", "/sentiment/dashboard")
}

// Trade fetches the trade panel.
func (g *Gateway) Trade(ctx context.Context) (map[string]float64, error) {
	return g.panel(ctx, "trade", "/trade/exports")
}

func (g *Gateway) panel(ctx context.Context, source, path string) (map[string]float64, error) {
	var m map[string]float64
	if err := g.client.GetJSON(ctx, source, g.url(path), &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: %s: empty panel", ErrUnavailable, source)
	}
	return m, nil
}
