// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediagate_requests_total",
			Help: "Media requests by operation and outcome",
		},
		[]string{"operation", "result"},
	)

	extractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediagate_extraction_duration_seconds",
			Help:    "Time spent in the extraction engine by mode",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode", "result"},
	)

	storedBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediagate_stored_bytes_total",
			Help: "Bytes written into the file store by mode",
		},
		[]string{"mode"},
	)

	authFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mediagate_auth_failures_total",
			Help: "Requests rejected by the API key check",
		},
	)
)

func ObserveRequest(operation string, err error) {
	requestsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func ObserveExtraction(mode string, start time.Time, err error) {
	extractionDuration.WithLabelValues(mode, outcome(err)).Observe(time.Since(start).Seconds())
}

func AddStoredBytes(mode string, n int64) {
	if n > 0 {
		storedBytesTotal.WithLabelValues(mode).Add(float64(n))
	}
}

func IncAuthFailure() {
	authFailuresTotal.Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
