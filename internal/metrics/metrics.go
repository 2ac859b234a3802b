// Package metrics defines the Prometheus collectors exported by newslens.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction paths reported by EntityExtractions.
const (
	PathRemote   = "remote"
	PathFallback = "fallback"
)

var (
	// EntityExtractions counts completed extraction calls by the path that
	// produced the result.
	EntityExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_entity_extractions_total",
			Help: "Total number of entity extraction calls by result path",
		},
		[]string{"path"},
	)

	// RemoteExtractionFailures counts remote extraction failures by reason
	// ("timeout", "status", "decode", "transport", "circuit_open", "rate_limited").
	RemoteExtractionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_remote_extraction_failures_total",
			Help: "Total number of remote entity extraction failures",
		},
		[]string{"reason"},
	)

	RemoteExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newslens_remote_extraction_duration_seconds",
			Help:    "Duration of remote entity extraction calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CircuitBreakerState reports the remote extractor breaker state
	// (0 = closed, 1 = half-open, 2 = open).
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newslens_remote_extraction_circuit_state",
			Help: "Remote extraction circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// TrendingMockFallbacks counts trending computations answered from the
	// derived mock entity set.
	TrendingMockFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newslens_trending_mock_fallbacks_total",
			Help: "Total number of trending requests served by the mock entity fallback",
		},
	)

	// HeadlineCacheLookups counts headline cache lookups by result ("hit", "miss", "error").
	HeadlineCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_headline_cache_lookups_total",
			Help: "Total number of headline cache lookups by result",
		},
		[]string{"result"},
	)

	// SourceFetchFailures counts article source fetch failures by source kind.
	SourceFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_source_fetch_failures_total",
			Help: "Total number of article source fetch failures",
		},
		[]string{"source"},
	)

	// HTTPRequests counts served API requests by route pattern and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newslens_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newslens_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
