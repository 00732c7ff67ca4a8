package submission

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by an instrumented gateway.
type Metrics struct {
	created  prometheus.Counter
	failures prometheus.Counter
	latency  prometheus.Histogram
}

// NewMetrics builds the collectors and registers them with reg. A nil reg
// skips registration, which keeps tests free of global state.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pmsform",
			Subsystem: "submission",
			Name:      "created_total",
			Help:      "Records accepted by the submission gateway.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pmsform",
			Subsystem: "submission",
			Name:      "failures_total",
			Help:      "Submission attempts rejected by the gateway.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pmsform",
			Subsystem: "submission",
			Name:      "create_duration_seconds",
			Help:      "Time spent in the submission gateway.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.created, m.failures, m.latency} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Instrument wraps next so every Create call updates m.
func Instrument(next Gateway, m *Metrics) Gateway {
	if m == nil {
		return next
	}
	return GatewayFunc(func(ctx context.Context, record Record) (StoredRecord, error) {
		start := time.Now()
		stored, err := next.Create(ctx, record)
		m.latency.Observe(time.Since(start).Seconds())
		if err != nil {
			m.failures.Inc()
			return StoredRecord{}, err
		}
		m.created.Inc()
		return stored, nil
	})
}
