package commands

import "github.com/prometheus/client_golang/prometheus"

func TransitionAttempts(m *TransitionMetrics) *prometheus.CounterVec { return m.attempts }
