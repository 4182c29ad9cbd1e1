// Package metrics exposes prometheus collectors for the pipeline service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionRunsTotal counts action invocations by action name and outcome
	ActionRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_runs_total",
			Help: "Total number of pipeline action runs.",
		},
		[]string{"action", "status"},
	)

	// ActionRunDuration observes how long action runs take
	ActionRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "action_run_duration_seconds",
			Help:    "Duration of pipeline action runs in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// HTTPRequestsTotal counts HTTP requests handled by the service
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)
)
