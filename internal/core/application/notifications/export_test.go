package notifications

import "github.com/prometheus/client_golang/prometheus"

func MetricsFailures(m *Metrics) *prometheus.CounterVec { return m.failed }

func MetricsDropped(m *Metrics) prometheus.Counter { return m.dropped }
