package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the verification service.
type Metrics struct {
	VerificationsTotal *prometheus.CounterVec
	UpstreamDuration   prometheus.Histogram
}

// New creates and registers all verification metrics.
func New() *Metrics {
	return &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credmint_verifications_total",
			Help: "Total number of verification requests by outcome",
		}, []string{"outcome"}),
		UpstreamDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credmint_verification_upstream_seconds",
			Help:    "Latency of calls to the issuance internal check endpoint",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncOutcome increments the verification counter for the given outcome.
func (m *Metrics) IncOutcome(outcome string) {
	if m != nil {
		m.VerificationsTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveUpstream records one upstream call duration in seconds.
func (m *Metrics) ObserveUpstream(seconds float64) {
	if m != nil {
		m.UpstreamDuration.Observe(seconds)
	}
}
