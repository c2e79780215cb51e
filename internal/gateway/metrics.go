package gateway

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors are process-global; the atomic counters below back
// the /status snapshot, which wants plain numbers rather than scrapes.
var (
	promLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "peerlens",
		Name:      "lookups_total",
		Help:      "Entity lookups by outcome.",
	}, []string{"outcome"})

	promLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "peerlens",
		Name:      "lookup_duration_seconds",
		Help:      "Lookup latency across both backends.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Metrics tracks gateway-level counters using atomic operations for
// lock-free concurrency.
type Metrics struct {
	lookups      atomic.Int64
	hits         atomic.Int64
	misses       atomic.Int64
	errors       atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// RecordLookup records a completed lookup and its outcome: "success",
// "not_found", "invalid", or "error".
func (m *Metrics) RecordLookup(outcome string, latency time.Duration) {
	m.lookups.Add(1)
	m.totalLatency.Add(int64(latency))

	switch outcome {
	case "success":
		m.hits.Add(1)
	case "not_found":
		m.misses.Add(1)
	case "invalid":
	default:
		m.errors.Add(1)
	}

	promLookups.WithLabelValues(outcome).Inc()
	promLookupDuration.Observe(latency.Seconds())
}

// Snapshot returns a consistent point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	lookups := m.lookups.Load()
	snap := MetricsSnapshot{
		Lookups:  lookups,
		Hits:     m.hits.Load(),
		NotFound: m.misses.Load(),
		Errors:   m.errors.Load(),
	}
	if lookups > 0 {
		snap.AvgLatency = time.Duration(m.totalLatency.Load() / lookups)
	}
	return snap
}

// MetricsSnapshot is a serializable point-in-time metrics view.
type MetricsSnapshot struct {
	Lookups    int64         `json:"lookups"`
	Hits       int64         `json:"hits"`
	NotFound   int64         `json:"not_found"`
	Errors     int64         `json:"errors"`
	AvgLatency time.Duration `json:"avg_latency_ns"`
}
