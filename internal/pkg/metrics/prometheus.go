// Package metrics exposes the tracker's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics of the lifecycle engine.
type Metrics struct {
	EventsRecorded       *prometheus.CounterVec
	CapacityRejections   prometheus.Counter
	TransitionRejections *prometheus.CounterVec
	ActiveShipments      *prometheus.GaugeVec
}

// NewMetrics registers the collectors on reg. Passing a fresh registry keeps
// tests independent of the global default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_events_recorded_total",
			Help:      "The total number of status events appended to shipment histories",
		}, []string{"status"}),
		CapacityRejections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_rejections_total",
			Help:      "The total number of operations rejected because a carrier was at capacity",
		}),
		TransitionRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transition_rejections_total",
			Help:      "The total number of status events rejected by the event log",
		}, []string{"reason"}),
		ActiveShipments: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "carrier_active_shipments",
			Help:      "Active shipments per carrier at the last capacity snapshot",
		}, []string{"carrier_id"}),
	}
}

func (m *Metrics) EventRecorded(status string) {
	m.EventsRecorded.WithLabelValues(status).Inc()
}

func (m *Metrics) CapacityRejected() {
	m.CapacityRejections.Inc()
}

func (m *Metrics) TransitionRejected(reason string) {
	m.TransitionRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) CarrierActiveShipments(carrierID string, active int) {
	m.ActiveShipments.WithLabelValues(carrierID).Set(float64(active))
}

// Nop discards every observation.
type Nop struct{}

func (Nop) EventRecorded(string)               {}
func (Nop) CapacityRejected()                  {}
func (Nop) TransitionRejected(string)          {}
func (Nop) CarrierActiveShipments(string, int) {}
