package sentiment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// classificationsTotal counts finished annotations by backend and outcome
	// (positive, negative or other for successes, the failure kind otherwise)
	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_classifications_total",
		Help: "Review annotations by backend and outcome",
	}, []string{"backend", "outcome"})

	providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sentiment_provider_duration_seconds",
		Help:    "Single provider call latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
	}, []string{"backend"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_retries_total",
		Help: "Provider calls repeated by the retry policy",
	}, []string{"backend", "action"})

	// breakerState is 0 closed, 1 half-open, 2 open
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sentiment_breaker_state",
		Help: "Circuit breaker state per backend",
	}, []string{"backend"})
)
