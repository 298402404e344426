package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog load outcomes
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
	OutcomeStale  = "stale"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bingebuddy",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bingebuddy",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5},
	}, []string{"method", "path"})

	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bingebuddy",
		Name:      "upstream_requests_total",
		Help:      "Total requests to metadata services by service, endpoint and result status.",
	}, []string{"service", "endpoint", "status"})

	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bingebuddy",
		Name:      "upstream_request_duration_seconds",
		Help:      "Metadata service request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10},
	}, []string{"service", "endpoint"})

	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bingebuddy",
		Name:      "cache_hits_total",
		Help:      "Total cache hits by cache name.",
	}, []string{"cache"})

	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bingebuddy",
		Name:      "cache_misses_total",
		Help:      "Total cache misses by cache name.",
	}, []string{"cache"})

	CatalogLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bingebuddy",
		Name:      "catalog_loads_total",
		Help:      "Catalog loads by kind (default, search) and outcome (ok, failed, stale).",
	}, []string{"kind", "outcome"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bingebuddy",
		Name:      "browse_sessions_active",
		Help:      "Number of open browse sessions.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		CacheHitsTotal,
		CacheMissesTotal,
		CatalogLoadsTotal,
		ActiveSessions,
	)
}
