package server

import "github.com/prometheus/client_golang/prometheus"

const prometheusMetricNamespace = "iniget"

const (
	outcomeFound       = "found"
	outcomeNotFound    = "not_found"
	outcomeSourceError = "source_error"
	outcomeBadRequest  = "bad_request"
)

var (
	lookupTotalCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "lookups_total",
			Help:      "Number of lookup requests handled, by outcome.",
		},
		[]string{"outcome"},
	)

	lookupDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: prometheusMetricNamespace,
			Name:      "lookup_duration_seconds",
			Help:      "Duration of successful lookups.",
			Buckets:   []float64{0.001, 0.01, 0.1, 1.0},
		},
	)
)

func init() {
	prometheus.MustRegister(lookupTotalCounter)
	prometheus.MustRegister(lookupDurationHistogram)
}
