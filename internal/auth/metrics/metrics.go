package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the session lifecycle.
type Metrics struct {
	// Login and refresh outcomes: success, invalid_credentials, inactive, invalid_token, error
	LoginOutcome   *prometheus.CounterVec
	RefreshOutcome *prometheus.CounterVec

	// Token verification failures by kind and reason
	TokenFailures *prometheus.CounterVec

	PasswordResetRequests prometheus.Counter
	PasswordSets          *prometheus.CounterVec
}

// New creates a new Metrics instance with all auth metrics registered.
func New() *Metrics {
	return &Metrics{
		LoginOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_auth_login_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),

		RefreshOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_auth_refresh_total",
			Help: "Access token refresh attempts by outcome",
		}, []string{"outcome"}),

		TokenFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_auth_token_failures_total",
			Help: "Token verification failures by token kind and reason",
		}, []string{"kind", "reason"}),

		PasswordResetRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_auth_password_reset_requests_total",
			Help: "Forgot-password requests, including unknown emails",
		}),

		PasswordSets: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_auth_password_sets_total",
			Help: "Successful password sets by token kind",
		}, []string{"kind"}),
	}
}

// IncLogin records a login outcome.
func (m *Metrics) IncLogin(outcome string) {
	if m != nil {
		m.LoginOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncRefresh records a refresh outcome.
func (m *Metrics) IncRefresh(outcome string) {
	if m != nil {
		m.RefreshOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncTokenFailure records a failed verification.
func (m *Metrics) IncTokenFailure(kind, reason string) {
	if m != nil {
		m.TokenFailures.WithLabelValues(kind, reason).Inc()
	}
}

// IncPasswordResetRequest records a forgot-password request.
func (m *Metrics) IncPasswordResetRequest() {
	if m != nil {
		m.PasswordResetRequests.Inc()
	}
}

// IncPasswordSet records a successful password set.
func (m *Metrics) IncPasswordSet(kind string) {
	if m != nil {
		m.PasswordSets.WithLabelValues(kind).Inc()
	}
}
