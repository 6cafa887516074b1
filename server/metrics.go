package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts check-in operations by outcome ("ok", "empty" or "invalid").
type Metrics struct {
	Operations *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkin",
			Name:      "operations_total",
			Help:      "Check-in operations served, by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	registerer.MustRegister(m.Operations)
	return m
}

func (m *Metrics) observe(operation string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "empty"
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}
