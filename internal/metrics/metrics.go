// Package metrics registers the Prometheus instruments shared across
// the service: cache effectiveness, upstream fetch health, and HTTP
// request latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "macrowatch",
		Name:      "cache_hits_total",
		Help:      "Cache hits by cache key.",
	}, []string{"key"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "macrowatch",
		Name:      "cache_misses_total",
		Help:      "Cache misses by cache key.",
	}, []string{"key"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "macrowatch",
		Name:      "upstream_fetch_duration_seconds",
		Help:      "Upstream fetch latency by source.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "macrowatch",
		Name:      "upstream_fetch_errors_total",
		Help:      "Failed upstream fetches by source.",
	}, []string{"source"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "macrowatch",
		Name:      "http_request_duration_seconds",
		Help:      "API request latency by route and status.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"route", "status"})
)

// CacheHit records a fresh cache read for key.
func CacheHit(key string) { cacheHits.WithLabelValues(key).Inc() }

// CacheMiss records an absent or stale cache read for key.
func CacheMiss(key string) { cacheMisses.WithLabelValues(key).Inc() }

// ObserveFetch records one upstream fetch attempt.
func ObserveFetch(source string, d time.Duration, err error) {
	fetchDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		fetchErrors.WithLabelValues(source).Inc()
	}
}

// ObserveRequest records one served API request.
func ObserveRequest(route, status string, d time.Duration) {
	httpDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
