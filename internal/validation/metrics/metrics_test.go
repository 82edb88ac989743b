package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementValidation(true)
	m.IncrementValidation(true)
	m.IncrementValidation(false)
	m.IncrementStoreFailure("append")
	m.IncrementPublishFailure()
	m.IncrementDegraded("history")
	m.ObserveStoreLatency("list", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreFailures.WithLabelValues("append")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PublishFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DegradedResponses.WithLabelValues("history")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StoreLatency))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementValidation(true)
		m.IncrementStoreFailure("append")
		m.IncrementPublishFailure()
		m.IncrementDegraded("history")
		m.ObserveStoreLatency("list", time.Second)
	})
}
