package datasources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/macrowatch/macrowatch/internal/metrics"
)

const defaultUserAgent = "macrowatch/1.0"

// Client is the shared upstream HTTP client. Each logical source gets
// its own circuit breaker; the token bucket is shared so one noisy
// source cannot starve the host budget.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	breakers  map[string]*gobreaker.CircuitBreaker
	userAgent string
}

// ClientConfig tunes the shared upstream client.
type ClientConfig struct {
	Timeout   time.Duration
	RPS       float64
	Burst     int
	UserAgent string
}

// DefaultClientConfig returns conservative upstream limits.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   10 * time.Second,
		RPS:       4,
		Burst:     8,
		UserAgent: defaultUserAgent,
	}
}

// NewClient builds the shared client for the named sources.
func NewClient(cfg ClientConfig, sources ...string) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RPS == 0 {
		cfg.RPS = 4
	}
	if cfg.Burst == 0 {
		cfg.Burst = 8
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	breakers := make(map[string]*gobreaker.CircuitBreaker, len(sources))
	for _, name := range sources {
		st := gobreaker.Settings{Name: name}
		st.Interval = 60 * time.Second
		st.Timeout = 60 * time.Second
		st.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		}
		breakers[name] = gobreaker.NewCircuitBreaker(st)
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breakers:  breakers,
		userAgent: cfg.UserAgent,
	}
}

// GetJSON fetches url through the source's breaker and decodes the
// response body into out.
func (c *Client) GetJSON(ctx context.Context, source, url string, out interface{}) error {
	start := time.Now()
	err := c.getJSON(ctx, source, url, out)
	metrics.ObserveFetch(source, time.Since(start), err)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("upstream fetch failed")
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, source, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, source, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	br := c.breakers[source]
	if br == nil {
		return c.doJSON(ctx, url, out)
	}

	_, err := br.Execute(func() (interface{}, error) {
		return nil, c.doJSON(ctx, url, out)
	})
	return err
}

func (c *Client) doJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
