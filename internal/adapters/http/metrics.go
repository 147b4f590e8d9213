package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts machine lifecycle and input outcomes for the serve adapter.
type Metrics struct {
	MachinesCreated prometheus.Counter
	Inputs          *prometheus.CounterVec
}

// NewMetrics registers the serve counters on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MachinesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statemachine",
			Name:      "machines_created_total",
			Help:      "Number of machine instances created.",
		}),
		Inputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statemachine",
			Name:      "inputs_total",
			Help:      "Inputs dispatched, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.MachinesCreated, m.Inputs)
	return m
}
