package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("order.confirm_payment", "success", 0.2)
	m.ObserveOperation("order.confirm_payment", "success", 0.1)
	m.ObserveOperation("order.confirm_payment", "error", 0.1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationTotal.WithLabelValues("order.confirm_payment", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationTotal.WithLabelValues("order.confirm_payment", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("x", "y", 1)
		m.ObserveProcessor("stripe", "success")
	})
}
