// Package metrics declares the Prometheus collectors used across the
// application. Collectors register themselves on the default registry at
// init; the /metrics endpoint exposes them via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dealdeck",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern, and status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dealdeck",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	StatsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdeck",
		Name:      "stats_cache_hits_total",
		Help:      "City-stats requests served from the Redis cache",
	})

	StatsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdeck",
		Name:      "stats_cache_misses_total",
		Help:      "City-stats requests that fell through to PostgreSQL",
	})

	LiveSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "dealdeck",
		Name:      "live_sessions_active",
		Help:      "Currently connected live WebSocket sessions",
	})

	DealsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dealdeck",
		Name:      "deals_imported_total",
		Help:      "Deals successfully imported from CSV feeds",
	})
)
