package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The registry is process-global, so disabled and enabled behavior are
// checked in one test to keep the ordering explicit.
func TestRemoteMetricsLifecycle(t *testing.T) {
	require.Nil(t, NewRemoteMetrics(), "constructors return nil until the registry is initialized")
	require.False(t, IsEnabled())

	InitRegistry()
	InitRegistry() // repeated calls are ignored
	require.True(t, IsEnabled())
	require.NotNil(t, GetRegistry())

	m := NewRemoteMetrics()
	require.NotNil(t, m)

	m.ObserveOperation("head", 5*time.Millisecond, nil)
	m.ObserveOperation("head", 5*time.Millisecond, nil)
	m.ObserveOperation("get", 12*time.Millisecond, fmt.Errorf("connection refused"))
	m.RecordBytes("get", 2048)

	impl := m.(*remoteMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(impl.operationsTotal.WithLabelValues("head", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.operationsTotal.WithLabelValues("get", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.errorsTotal.WithLabelValues("get")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(impl.fetchedBytes.WithLabelValues("get")))
}
