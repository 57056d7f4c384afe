package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Custom registry so the default one stays free of unrelated collectors.
var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds.
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "oddsgate_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oddsgate_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"path"},
	)

	UpstreamLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oddsgate_upstream_latency_ms",
			Help:    "Upstream relay latency in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	CacheHits = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "oddsgate_cache_hits_total",
			Help: "Relay responses served from cache",
		},
	)

	CacheMisses = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "oddsgate_cache_misses_total",
			Help: "Relay requests that missed the cache",
		},
	)

	RateLimitRejections = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "oddsgate_ratelimit_rejections_total",
			Help: "Requests rejected by the fixed-window rate limiter",
		},
	)
)

// Initialize registers the process and Go runtime collectors.
func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Registry exposes the registry for the /metrics handler.
func Registry() *prometheus.Registry {
	return registry
}
