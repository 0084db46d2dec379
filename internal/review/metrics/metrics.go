package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the review workflow.
type Metrics struct {
	SubmissionsTotal   *prometheus.CounterVec
	TransitionsTotal   *prometheus.CounterVec
	TransitionRejected *prometheus.CounterVec
}

// New creates and registers all review workflow metrics.
func New() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "artistsaid_review_submissions_total",
			Help: "Items submitted into a review queue, by domain.",
		}, []string{"domain"}),
		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "artistsaid_review_transitions_total",
			Help: "Applied reviewer decisions, by domain and decision.",
		}, []string{"domain", "decision"}),
		TransitionRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "artistsaid_review_transitions_rejected_total",
			Help: "Reviewer decisions rejected before the write, by domain and reason.",
		}, []string{"domain", "reason"}),
	}
}

// IncSubmission records one accepted submission.
func (m *Metrics) IncSubmission(domain string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(domain).Inc()
}

// IncTransition records one applied decision.
func (m *Metrics) IncTransition(domain, decision string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(domain, decision).Inc()
}

// IncRejected records one decision rejected before the write.
func (m *Metrics) IncRejected(domain, reason string) {
	if m == nil {
		return
	}
	m.TransitionRejected.WithLabelValues(domain, reason).Inc()
}
