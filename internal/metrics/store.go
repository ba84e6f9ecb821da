package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store Prometheus metrics.
var (
	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toprank",
			Name:      "store_queries_total",
			Help:      "Total number of ranking store queries",
		},
		[]string{"status"}, // "ok" / "error"
	)

	StoreQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "toprank",
			Name:      "store_query_duration_seconds",
			Help:      "Ranking store query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers Prometheus store metrics. Must be called once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(StoreQueriesTotal)
	prometheus.MustRegister(StoreQueryDuration)
	storeMetricsRegistered = true
}

// ObserveStoreQuery records one store round trip.
func ObserveStoreQuery(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreQueriesTotal.WithLabelValues(status).Inc()
	StoreQueryDuration.Observe(d.Seconds())
}
