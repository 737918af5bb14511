package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cubbit/objsync/pkg/remote"
)

// remoteMetrics is the Prometheus implementation of the remote.Metrics
// interface.
//
// It collects, per operation kind (head, get, presign):
//   - Operation counts by status
//   - Operation latency
//   - Bytes fetched
//   - Error counts
type remoteMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	fetchedBytes      *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
}

// NewRemoteMetrics creates a new Prometheus-backed remote.Metrics
// instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called), which
// causes remote handles to use their built-in no-op implementation.
func NewRemoteMetrics() remote.Metrics {
	if !IsEnabled() {
		return nil // remote handles will use their no-op collector
	}

	reg := GetRegistry()

	return &remoteMetrics{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "objsync_remote_operations_total",
				Help: "Total number of remote object operations by operation type and status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "objsync_remote_operation_duration_seconds",
				Help: "Duration of remote object operations in seconds",
				Buckets: []float64{
					0.01,  // 10ms
					0.025, // 25ms
					0.05,  // 50ms
					0.1,   // 100ms
					0.25,  // 250ms
					0.5,   // 500ms
					1.0,   // 1s
					2.5,   // 2.5s
					5.0,   // 5s
					10.0,  // 10s
					30.0,  // 30s
				},
			},
			[]string{"operation"},
		),
		fetchedBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "objsync_remote_fetched_bytes_total",
				Help: "Total bytes fetched from remote object storage",
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "objsync_remote_errors_total",
				Help: "Total number of remote object operation errors by operation type",
			},
			[]string{"operation"},
		),
	}
}

// ObserveOperation implements remote.Metrics.ObserveOperation
func (m *remoteMetrics) ObserveOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		m.errorsTotal.WithLabelValues(operation).Inc()
	}

	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordBytes implements remote.Metrics.RecordBytes
func (m *remoteMetrics) RecordBytes(operation string, bytes int64) {
	m.fetchedBytes.WithLabelValues(operation).Add(float64(bytes))
}
