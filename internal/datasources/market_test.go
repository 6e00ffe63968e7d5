package datasources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	cfg := DefaultClientConfig()
	cfg.RPS = 1000
	cfg.Burst = 1000
	return NewClient(cfg, "market", "history", "macro")
}

func TestQuoteAPI_Snapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v7/finance/quote")
		fmt.Fprint(w, `{"quoteResponse":{"result":[
			{"symbol":"TRY=X","regularMarketPrice":34.20,"regularMarketChangePercent":0.15},
			{"symbol":"GC=F","regularMarketPrice":2650.0,"regularMarketChangePercent":-0.40},
			{"symbol":"^VIX","regularMarketPrice":18.3,"regularMarketChangePercent":4.2}
		]}}`)
	}))
	defer srv.Close()

	api := NewQuoteAPI(newTestClient(), srv.URL)
	snap, err := api.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 34.20, snap["TRY=X"].Price)
	assert.Equal(t, 4.2, snap["^VIX"].ChangePct)

	gram, ok := snap["gram_gold"]
	require.True(t, ok, "gram gold should be derived from gold and USDTRY")
	assert.InDelta(t, 2650.0*34.20/31.1035, gram.Price, 0.01)
	assert.InDelta(t, -0.25, gram.ChangePct, 1e-9)
}

func TestQuoteAPI_SnapshotEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[]}}`)
	}))
	defer srv.Close()

	api := NewQuoteAPI(newTestClient(), srv.URL)
	_, err := api.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestQuoteAPI_History(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/TRY=X")
		assert.Equal(t, "3mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		// Second close is null and must be skipped.
		fmt.Fprint(w, `{"chart":{"result":[{
			"timestamp":[1700000000,1700086400,1700172800],
			"indicators":{"quote":[{
				"open":[33.0,33.1,33.2],
				"close":[33.5,null,33.9]
			}]}
		}]}}`)
	}))
	defer srv.Close()

	api := NewQuoteAPI(newTestClient(), srv.URL)
	candles, err := api.History(context.Background(), "TRY=X", "3mo")
	require.NoError(t, err)

	require.Len(t, candles, 2)
	assert.Equal(t, 33.5, candles[0].Close)
	assert.Equal(t, 33.0, candles[0].Open)
	assert.Equal(t, 33.9, candles[1].Close)
	assert.Equal(t, []float64{33.5, 33.9}, Closes(candles))
}

func TestQuoteAPI_HistoryUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	api := NewQuoteAPI(newTestClient(), srv.URL)
	_, err := api.History(context.Background(), "TRY=X", "3mo")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGateway_Panel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/macro/panel", r.URL.Path)
		assert.Equal(t, "sekret", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{
			"policy_rates":{"policy_rate":50.0,"deposit":47.5},
			"bonds":{"tr_2y":41.0,"us_10y":4.3,"risk_premium":0.22},
			"cds":{"val":305.0,"change_pct":1.1}
		}`)
	}))
	defer srv.Close()

	gw := NewGateway(newTestClient(), srv.URL, "sekret")
	p, err := gw.Panel(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50.0, p.PolicyRates["policy_rate"])
	assert.Equal(t, 0.22, p.Bonds["risk_premium"])
	require.NotNil(t, p.CDS)
	assert.Equal(t, 305.0, p.CDS.Value)
}

func TestGateway_EmptyPanelIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	gw := NewGateway(newTestClient(), srv.URL, "")
	_, err := gw.Panel(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
