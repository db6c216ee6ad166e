package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared by the workflow, payment clients and HTTP layer.
type Metrics struct {
	OperationTotal    *prometheus.CounterVec   // workflow_operations_total{operation,outcome}
	OperationDuration *prometheus.HistogramVec // workflow_operation_duration_seconds{operation}
	ProcessorRequests *prometheus.CounterVec   // payment_processor_requests_total{provider,outcome}
	HTTPRequests      *prometheus.CounterVec   // http_requests_total{method,route,status}
}

// New creates the collectors and registers them on reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_operations_total",
				Help: "Total number of order workflow operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workflow_operation_duration_seconds",
				Help:    "Duration of order workflow operations in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ProcessorRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_processor_requests_total",
				Help: "Payment processor calls by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route template and status.",
			},
			[]string{"method", "route", "status"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.OperationTotal, m.OperationDuration, m.ProcessorRequests, m.HTTPRequests)
	}
	return m
}

// ObserveOperation records one workflow invocation.
func (m *Metrics) ObserveOperation(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.OperationTotal.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveProcessor records one call to the external payment processor.
func (m *Metrics) ObserveProcessor(provider, outcome string) {
	if m == nil {
		return
	}
	m.ProcessorRequests.WithLabelValues(provider, outcome).Inc()
}
