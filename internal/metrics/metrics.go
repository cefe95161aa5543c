// Package metrics provides Prometheus collectors for the catalog API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for GraphQL operations.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with the registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "catalog",
				Name:      "graphql_operations_total",
				Help:      "Total number of GraphQL operations by name and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "catalog",
				Name:      "graphql_operation_duration_seconds",
				Help:      "GraphQL operation latency by name.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.operationsTotal, m.operationDuration)
	return m
}

// ObserveOperation records one completed GraphQL operation.
// outcome is "ok" for successful envelopes and "failed" otherwise.
func (m *Metrics) ObserveOperation(operation string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.operationsTotal.WithLabelValues(operation, outcome).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
