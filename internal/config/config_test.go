package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macrowatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.HTTP.Listen)
	assert.Equal(t, time.Minute, cfg.Cache.MarketTTL.Std())
	assert.Equal(t, 5*time.Minute, cfg.Cache.PanelTTL.Std())
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesMergeOverDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  listen: ":9000"
cache:
  market_ttl: 30s
  panel_ttl: 10m
redis:
  addr: "localhost:6379"
scorecard:
  weights:
    cds: 0.3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Listen)
	assert.Equal(t, 30*time.Second, cfg.Cache.MarketTTL.Std())
	assert.Equal(t, 10*time.Minute, cfg.Cache.PanelTTL.Std())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0.3, cfg.Scorecard.Weights["cds"])

	// Untouched fields keep defaults.
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Upstream.QuoteBaseURL)
}

func TestLoad_RejectsEmptyListen(t *testing.T) {
	path := writeConfig(t, `
http:
  listen: ""
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "http.listen")
}

func TestLoad_RejectsNegativeWeight(t *testing.T) {
	path := writeConfig(t, `
scorecard:
  weights:
    erp: -0.2
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "erp")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "http: [not a map")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}
