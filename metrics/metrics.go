// Package metrics provides Prometheus metrics for the trading client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts completed HTTP exchanges against the
	// exchange API. status "0" means no response was received.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "API requests by endpoint, method and HTTP status",
	}, []string{"endpoint", "method", "status"})

	// APIRequestDuration observes per-request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "API request latency by endpoint",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// OrdersPlaced counts order placement outcomes.
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders placed by result (success, validation_error, api_error, unknown_error)",
	}, []string{"result"})
)

// Observer implements the gateway's request-observer hook.
type Observer struct{}

func (Observer) ObserveRequest(endpoint, method string, status int, elapsed time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordOrderResult tallies one order placement outcome.
func RecordOrderResult(result string) {
	OrdersPlaced.WithLabelValues(result).Inc()
}

// StartMetricsServer exposes /metrics on addr in a background goroutine.
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
