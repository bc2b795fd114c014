package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	optimizeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "strikeplan_optimize_requests_total",
		Help: "Optimize requests by HTTP status code.",
	}, []string{"status"})

	inferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "strikeplan_inference_duration_seconds",
		Help:    "End-to-end engine latency per optimize request.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	battersPerRequest = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "strikeplan_batters_per_request",
		Help:    "Number of batters scored per optimize request.",
		Buckets: prometheus.LinearBuckets(1, 1, 11),
	})
)

func recordOptimize(status int) {
	optimizeRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func observeInference(d time.Duration, batters int) {
	inferenceDuration.Observe(d.Seconds())
	battersPerRequest.Observe(float64(batters))
}
