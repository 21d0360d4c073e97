package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "koreanbots_client",
			Name:      "requests_total",
			Help:      "Requests sent, by operation and HTTP status (\"error\" for transport failures).",
		},
		[]string{"endpoint", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "koreanbots_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time including reading the body.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	rateLimitRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "koreanbots_client",
			Name:      "ratelimit_remaining",
			Help:      "Last x-ratelimit-remaining value seen.",
		},
	)
)
