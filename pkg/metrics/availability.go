package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AvailabilityMetrics records schedule-recheck activity for the store
// availability watcher.
type AvailabilityMetrics struct {
	recheck *prometheus.HistogramVec
	flips   *prometheus.CounterVec
}

// NewAvailabilityMetrics registers the availability metrics on the provided registerer.
func NewAvailabilityMetrics(reg prometheus.Registerer) *AvailabilityMetrics {
	if reg == nil {
		return &AvailabilityMetrics{}
	}
	recheck := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "availability_recheck_duration_seconds",
		Help:    "Duration of store availability rechecks in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	flips := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_status_flips",
		Help: "Store open/closed transitions.",
	}, []string{"to"})
	reg.MustRegister(recheck, flips)
	return &AvailabilityMetrics{
		recheck: recheck,
		flips:   flips,
	}
}

// ObserveRecheck records the duration of one availability recheck.
func (m *AvailabilityMetrics) ObserveRecheck(trigger string, duration time.Duration) {
	if m == nil || m.recheck == nil {
		return
	}
	m.recheck.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// IncFlip counts a transition into the named state ("open" or "closed").
func (m *AvailabilityMetrics) IncFlip(to string) {
	if m == nil || m.flips == nil {
		return
	}
	m.flips.WithLabelValues(normalizeLabel(to)).Inc()
}

// CartMetrics counts ledger mutations by operation.
type CartMetrics struct {
	mutations *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations",
		Help: "Cart ledger mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(mutations)
	return &CartMetrics{mutations: mutations}
}

// IncMutation counts one cart mutation.
func (m *CartMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
