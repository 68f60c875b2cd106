// Package metrics exposes Prometheus collectors for expense operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expensetracker"

// Result labels for operation counters.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics groups the collectors registered on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	expenses   prometheus.Gauge
	requests   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Expense store operations by operation and result.",
		}, []string{"operation", "result"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inputs_total",
			Help:      "User input ignored because it failed to parse.",
		}, []string{"field"}),
		expenses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expenses",
			Help:      "Number of expenses currently held.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
	m.registry.MustRegister(m.operations, m.rejected, m.expenses, m.requests)
	return m
}

// ObserveOperation counts one store operation. Safe on a nil receiver.
func (m *Metrics) ObserveOperation(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObserveRejected counts one ignored input. Safe on a nil receiver.
func (m *Metrics) ObserveRejected(field string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(field).Inc()
}

// SetExpenseCount updates the expense gauge. Safe on a nil receiver.
func (m *Metrics) SetExpenseCount(n int) {
	if m == nil {
		return
	}
	m.expenses.Set(float64(n))
}

// Instrument wraps h with a request counter.
func (m *Metrics) Instrument(h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	return promhttp.InstrumentHandlerCounter(m.requests, h)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
