// Package config loads the YAML runtime configuration. Every field
// has a usable default so the binary runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full runtime configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Scorecard ScorecardConfig `yaml:"scorecard"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Listen          string   `yaml:"listen"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	RequestTimeout  Duration `yaml:"request_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	TickerInterval  Duration `yaml:"ticker_interval"`
}

// CacheConfig sets the per-category TTLs of the in-process cache.
type CacheConfig struct {
	MarketTTL Duration `yaml:"market_ttl"`
	PanelTTL  Duration `yaml:"panel_ttl"`
}

// UpstreamConfig points at the quote API and the macro panel gateway.
type UpstreamConfig struct {
	QuoteBaseURL   string   `yaml:"quote_base_url"`
	PanelBaseURL   string   `yaml:"panel_base_url"`
	PanelAPIKey    string   `yaml:"panel_api_key"`
	RequestTimeout Duration `yaml:"request_timeout"`
	RatePerSec     float64  `yaml:"rate_per_sec"`
	RateBurst      int      `yaml:"rate_burst"`
	UserAgent      string   `yaml:"user_agent"`
}

// RedisConfig configures the optional history cache. Empty Addr
// disables it; history then always goes upstream.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig configures the optional override store. Empty DSN
// disables overrides.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// ScorecardConfig overrides individual component weights; components
// not listed keep their defaults.
type ScorecardConfig struct {
	Weights map[string]float64 `yaml:"weights"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Listen:          ":8090",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(20 * time.Second),
			RequestTimeout:  Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			TickerInterval:  Duration(5 * time.Second),
		},
		Cache: CacheConfig{
			MarketTTL: Duration(time.Minute),
			PanelTTL:  Duration(5 * time.Minute),
		},
		Upstream: UpstreamConfig{
			QuoteBaseURL:   "https://query1.finance.yahoo.com",
			PanelBaseURL:   "http://localhost:8190",
			RequestTimeout: Duration(10 * time.Second),
			RatePerSec:     4,
			RateBurst:      8,
			UserAgent:      "macrowatch/1.0",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error;
// the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Listen == "" {
		return fmt.Errorf("http.listen must not be empty")
	}
	if c.Cache.MarketTTL <= 0 || c.Cache.PanelTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Upstream.QuoteBaseURL == "" {
		return fmt.Errorf("upstream.quote_base_url must not be empty")
	}
	if c.Upstream.RatePerSec <= 0 {
		return fmt.Errorf("upstream.rate_per_sec must be positive")
	}
	for name, w := range c.Scorecard.Weights {
		if w < 0 {
			return fmt.Errorf("scorecard weight %q must not be negative", name)
		}
	}
	return nil
}
