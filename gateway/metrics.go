package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexsync",
			Subsystem: "gateway",
			Name:      "invocations_total",
			Help:      "Remote model-service invocations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	invocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexsync",
			Subsystem: "gateway",
			Name:      "invocation_duration_seconds",
			Help:      "Latency of remote model-service invocations.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	waitPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexsync",
			Subsystem: "gateway",
			Name:      "wait_polls_total",
			Help:      "Status polls issued while waiting on asynchronous resource states.",
		},
		[]string{"operation"},
	)
)

func observeInvocation(operation string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	invocationsTotal.WithLabelValues(operation, outcome).Inc()
	invocationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func observeWaitPoll(operation string) {
	waitPollsTotal.WithLabelValues(operation).Inc()
}
