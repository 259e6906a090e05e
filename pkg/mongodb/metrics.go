package mongodb

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the prometheus collectors for query execution.
type Metrics struct {
	executions *prometheus.CounterVec
}

// NewMetrics creates the execution collectors and registers them on the given
// registerer, typically the registry exposed by the metrics package.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	executions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docq_query_executions_total",
			Help: "Number of queryset executions, partitioned by operation kind and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	reg.MustRegister(executions)

	return &Metrics{executions: executions}
}

// observe records one execution outcome. Precondition failures and driver
// errors both count as "error"; the error itself is carried by the return
// value and the span, not the counter.
func (m *Mongo) observe(op Operation, err error) {
	if m.metrics == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.metrics.executions.WithLabelValues(op.String(), outcome).Inc()
}
