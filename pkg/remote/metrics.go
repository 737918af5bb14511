package remote

import "time"

// Metrics provides observability for remote object operations.
//
// Implementations can use this interface to collect metrics about request
// latency, throughput, and errors. This is optional - if not provided,
// metrics collection is skipped.
//
// Example implementations:
//   - Prometheus metrics
//   - StatsD metrics
//   - In-memory counters for testing
type Metrics interface {
	// ObserveOperation records a storage operation with its duration and
	// outcome. Operations: "head", "get", "presign". An absent object is a
	// successful round trip, not an error.
	ObserveOperation(operation string, duration time.Duration, err error)

	// RecordBytes records bytes transferred for fetch operations
	RecordBytes(operation string, bytes int64)
}

// noopMetrics is a default no-op metrics implementation
type noopMetrics struct{}

func (noopMetrics) ObserveOperation(operation string, duration time.Duration, err error) {}
func (noopMetrics) RecordBytes(operation string, bytes int64)                            {}
