package shardqueue

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "koreanbots_client",
		Name:      "async_submissions_total",
		Help:      "Jobs accepted into the shard executor.",
	}, []string{"shard"})

	queueFullTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "koreanbots_client",
		Name:      "async_queue_full_total",
		Help:      "Submissions rejected because the shard queue stayed full.",
	}, []string{"shard"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "koreanbots_client",
		Name:      "async_run_duration_seconds",
		Help:      "Duration of each job attempt.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"shard"})

	queueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "koreanbots_client",
		Name:      "async_queue_depth",
		Help:      "Jobs waiting in each shard queue.",
	}, []string{"shard"})
)

func labelFor(shard int) string { return strconv.Itoa(shard) }
