package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// Transition outcomes reported by TransitionMetrics.
const (
	OutcomeApplied  = "applied"
	OutcomeDenied   = "denied"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeStorage  = "storage_error"
)

// TransitionMetrics counts status change attempts by target status and outcome.
type TransitionMetrics struct {
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewTransitionMetrics registers the collectors with reg when it is not nil.
func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	m := &TransitionMetrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orderflow_status_transitions_total",
				Help: "Order status change attempts by target status and outcome",
			},
			[]string{"to", "outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orderflow_status_transition_duration_seconds",
				Help:    "Time spent persisting a status change",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.attempts, m.duration)
	}
	return m
}

func (m *TransitionMetrics) observe(to order.Status, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(string(to), outcomeOf(err)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, errs.ErrPermissionDenied):
		return OutcomeDenied
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errors.Is(err, errs.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, errs.ErrStorage):
		return OutcomeStorage
	default:
		return OutcomeInvalid
	}
}
