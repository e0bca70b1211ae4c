package operation

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// StatusOK labels a request that returned a payload.
	StatusOK = "ok"
	// StatusError labels a failure that is not an *Error.
	StatusError = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yourang_requests_total",
			Help: "Total Yourang API operations by resource, operation and status",
		},
		[]string{"resource", "operation", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yourang_request_duration_seconds",
			Help:    "Duration of Yourang API operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "operation", "status"},
	)
)

// RecordRequest records one dispatched operation.
func RecordRequest(resource, op string, err error, duration time.Duration) {
	status := StatusLabel(err)
	requestsTotal.WithLabelValues(resource, op, status).Inc()
	requestDuration.WithLabelValues(resource, op, status).Observe(duration.Seconds())
}

// StatusLabel maps an operation result to its metric status label: "ok",
// the ErrorType of an *Error, or "error".
func StatusLabel(err error) string {
	if err == nil {
		return StatusOK
	}
	var opErr *Error
	if errors.As(err, &opErr) && opErr.Type != "" {
		return string(opErr.Type)
	}
	return StatusError
}
