package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "menu", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "menu", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// MenuOperations counts menu operations by operation (list|create|update|delete|snapshot)
	// and outcome (ok|validation|not_found|store_error).
	MenuOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "menu", Name: "operations_total", Help: "Menu operations by operation and outcome."},
		[]string{"op", "outcome"},
	)
	MenuOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "menu", Name: "operation_duration_seconds", Help: "Latency of menu store operations.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
	MenuItems = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "menu", Name: "items", Help: "Number of menu items seen on the last full listing."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(MenuOperations)
	reg.MustRegister(MenuOperationDuration)
	reg.MustRegister(MenuItems)
}
