package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "river_conditions_cache_lookups_total",
			Help: "Station cache lookups by result (hit, miss, stale)",
		},
		[]string{"provider", "result"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "river_conditions_upstream_requests_total",
			Help: "Total upstream provider requests",
		},
		[]string{"provider", "status"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "river_conditions_upstream_latency_seconds",
			Help:    "Upstream provider request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	Assemblies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "river_conditions_assemblies_total",
			Help: "Conditions documents assembled, by result",
		},
		[]string{"result"},
	)
)
