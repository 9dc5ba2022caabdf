// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "stockadoodle"

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Sale metrics
	SalesRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_recorded_total",
			Help: "Total number of sales recorded",
		},
	)

	SalesRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_revenue_total",
			Help: "Cumulative revenue of recorded sales",
		},
	)

	SalesUndoneTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_undone_total",
			Help: "Total number of sales undone",
		},
	)
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordSale increments the sale counters.
func RecordSale(total float64) {
	SalesRecordedTotal.Inc()
	SalesRevenueTotal.Add(total)
}

// RecordSaleUndo increments the undo counter.
func RecordSaleUndo() {
	SalesUndoneTotal.Inc()
}
