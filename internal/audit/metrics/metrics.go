package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the change and action auditors.
type Metrics struct {
	ActionsRecorded  *prometheus.CounterVec
	ActionFailures   *prometheus.CounterVec
	StreamFailures   prometheus.Counter
	ChangesRecorded  *prometheus.CounterVec
	DiffFailures     prometheus.Counter
	ChangelogLatency prometheus.Histogram
}

// New creates a new Metrics instance with audit metrics registered.
func New() *Metrics {
	return &Metrics{
		ActionsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_audit_actions_recorded_total",
			Help: "Action audit entries persisted, by action",
		}, []string{"action"}),
		ActionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_audit_action_failures_total",
			Help: "Action audit entries that failed to persist and were dropped, by action",
		}, []string{"action"}),
		StreamFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_audit_stream_failures_total",
			Help: "Audit entries that could not be mirrored to the event stream",
		}),
		ChangesRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_audit_changelog_entries_total",
			Help: "Changelog entries written, by parent kind",
		}, []string{"parent_kind"}),
		DiffFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_audit_changelog_diff_failures_total",
			Help: "Change diffs abandoned after an internal failure",
		}),
		ChangelogLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_audit_changelog_write_duration_ms",
			Help:    "Time to persist one batch of changelog entries in milliseconds",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
}

func (m *Metrics) IncActionRecorded(action string) {
	if m != nil {
		m.ActionsRecorded.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) IncActionFailure(action string) {
	if m != nil {
		m.ActionFailures.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) IncStreamFailure() {
	if m != nil {
		m.StreamFailures.Inc()
	}
}

func (m *Metrics) AddChanges(parentKind string, n int) {
	if m != nil && n > 0 {
		m.ChangesRecorded.WithLabelValues(parentKind).Add(float64(n))
	}
}

func (m *Metrics) IncDiffFailure() {
	if m != nil {
		m.DiffFailures.Inc()
	}
}

func (m *Metrics) ObserveChangelogWrite(ms float64) {
	if m != nil {
		m.ChangelogLatency.Observe(ms)
	}
}
