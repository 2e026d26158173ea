package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the issuance service.
type Metrics struct {
	CredentialsIssued prometheus.Counter
	IssueReplays      prometheus.Counter
	ChecksTotal       *prometheus.CounterVec
	StoreFailures     prometheus.Counter
}

// New creates and registers all issuance metrics.
func New() *Metrics {
	return &Metrics{
		CredentialsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credmint_credentials_issued_total",
			Help: "Total number of freshly minted credentials",
		}),
		IssueReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credmint_issue_replays_total",
			Help: "Total number of issue calls answered with an existing credential",
		}),
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credmint_credential_checks_total",
			Help: "Total number of internal credential checks by outcome",
		}, []string{"outcome"}),
		StoreFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credmint_store_failures_total",
			Help: "Total number of credential store failures",
		}),
	}
}

// IncIssued increments the fresh issuance counter.
func (m *Metrics) IncIssued() {
	if m != nil {
		m.CredentialsIssued.Inc()
	}
}

// IncReplay increments the replayed issuance counter.
func (m *Metrics) IncReplay() {
	if m != nil {
		m.IssueReplays.Inc()
	}
}

// IncCheck increments the check counter for the given outcome.
func (m *Metrics) IncCheck(outcome string) {
	if m != nil {
		m.ChecksTotal.WithLabelValues(outcome).Inc()
	}
}

// IncStoreFailure increments the store failure counter.
func (m *Metrics) IncStoreFailure() {
	if m != nil {
		m.StoreFailures.Inc()
	}
}
