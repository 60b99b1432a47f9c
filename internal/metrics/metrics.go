// Package metrics provides Prometheus metrics collection for the provisioning service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

const unmatchedPath = "unmatched"

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CalculationsTotal tracks provisioning calculations by outcome.
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provision_calculations_total",
			Help: "Total number of provisioning calculations",
		},
		[]string{"status"},
	)

	// CalculationDuration tracks provisioning calculation duration.
	CalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provision_calculation_duration_seconds",
			Help:    "Provisioning calculation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// CalculatedProducts tracks how many products a calculation returned.
	CalculatedProducts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "provision_calculation_products",
			Help:    "Number of products per provisioning calculation",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)
)

// RecordCalculation records metrics for a provisioning calculation.
func RecordCalculation(duration time.Duration, status string, products int) {
	CalculationDuration.Observe(duration.Seconds())
	CalculationsTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		CalculatedProducts.Observe(float64(products))
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records HTTP metrics. It must wrap the ServeMux directly so the
// matched route pattern is available as the path label.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = unmatchedPath
		}
		statusCode := strconv.Itoa(rec.status)

		HTTPRequestDuration.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(r.Method, path, statusCode).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
