// Package service orchestrates the session lifecycle: login, access token
// refresh, logout, and the email-token password flows.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"intake/internal/auth/metrics"
	"intake/internal/auth/models"
	"intake/internal/auth/token"
	"intake/internal/notification"
	id "intake/pkg/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// UserStore reads principals and stores new password digests.
type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetPassword(ctx context.Context, userID id.UserID, passwordHash string, now time.Time) error
}

// SessionStore holds the single valid refresh token per principal.
type SessionStore interface {
	Put(ctx context.Context, userID id.UserID, refreshToken string, ttl time.Duration) error
	Get(ctx context.Context, userID id.UserID) (string, error)
	Delete(ctx context.Context, userID id.UserID) error
}

// TokenCodec issues and verifies signed tokens.
type TokenCodec interface {
	Issue(kind token.Kind, claims token.Claims) (string, error)
	Verify(kind token.Kind, tokenString string) (*token.Claims, error)
	TTL(kind token.Kind) time.Duration
}

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Notifier delivers email-token links.
type Notifier interface {
	Send(ctx context.Context, msg notification.Message) error
}

const (
	MessageResetLinkSent = "If the email exists, a reset link has been sent."
	MessagePasswordSet   = "Password has been set successfully."
)

const defaultSetPasswordURL = "http://localhost:5173/set-password"

// Service is safe for concurrent use. The session store is the only shared
// mutable state; concurrent logins for one principal race and the last
// stored refresh token wins.
type Service struct {
	users     UserStore
	sessions  SessionStore
	tokens    TokenCodec
	passwords PasswordHasher
	notifier  Notifier
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer

	setPasswordURL string
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithNotifier sets the channel for password links. Defaults to logging them.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithSetPasswordURL sets the frontend page that receives the token query parameter.
func WithSetPasswordURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.setPasswordURL = u
		}
	}
}

func New(users UserStore, sessions SessionStore, tokens TokenCodec, passwords PasswordHasher, opts ...Option) *Service {
	s := &Service{
		users:          users,
		sessions:       sessions,
		tokens:         tokens,
		passwords:      passwords,
		logger:         slog.Default(),
		tracer:         otel.Tracer("intake/internal/auth/service"),
		setPasswordURL: defaultSetPasswordURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notification.NewLogNotifier(s.logger)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "auth."+name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// tokenFailure logs why a token was rejected. The reason never leaves the service.
func (s *Service) tokenFailure(ctx context.Context, kind token.Kind, err error, attrs ...any) {
	reason := string(token.ReasonOf(err))
	if reason == "" {
		reason = "unknown"
	}
	s.metrics.IncTokenFailure(kind.String(), reason)
	args := append([]any{"kind", kind.String(), "reason", reason}, attrs...)
	s.logger.WarnContext(ctx, "token rejected", args...)
}

func userAttr(userID id.UserID) attribute.KeyValue {
	return attribute.String("user.id", userID.String())
}
