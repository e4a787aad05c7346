// Package metrics объявляет метрики Prometheus сервиса парковки.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Источники сброса подписки.
const (
	SourceLazy  = "lazy"
	SourceSweep = "sweep"
)

var (
	PremiumActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "premium_activations_total",
			Help: "Total number of premium activations",
		},
		[]string{"premium_type"},
	)

	PremiumCancellations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "premium_cancellations_total",
			Help: "Total number of accepted cancellation requests",
		},
	)

	PremiumResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "premium_resets_total",
			Help: "Total number of expired subscriptions reset",
		},
		[]string{"source"},
	)

	SweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "premium_sweep_runs_total",
			Help: "Total number of reconciliation sweeps",
		},
		[]string{"result"},
	)

	SweepUserFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "premium_sweep_user_failures_total",
			Help: "Users skipped by a sweep because their reset failed",
		},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "premium_sweep_duration_seconds",
			Help:    "Duration of a reconciliation sweep in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
