package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts notification deliveries per target kind.
type Metrics struct {
	delivered *prometheus.CounterVec
	failed    *prometheus.CounterVec
	dropped   prometheus.Counter
}

// NewMetrics creates the dispatcher collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		delivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderflow_notifications_delivered_total",
				Help: "Notifications delivered to a target, by target kind",
			},
			[]string{"target"},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderflow_notification_failures_total",
				Help: "Notification deliveries that failed, by target kind",
			},
			[]string{"target"},
		),
		dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orderflow_notification_batches_dropped_total",
				Help: "Notification batches dropped because the dispatch queue stayed full",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.delivered, m.failed, m.dropped)
	}
	return m
}
