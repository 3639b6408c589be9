package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"intake/internal/auth/token"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/sentinel"
)

const msgInvalidCredentials = "Invalid credentials"

// LoginResult carries the tokens issued on a successful login. The handler
// returns AccessToken in the body and RefreshToken as a cookie.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	RefreshTTL   time.Duration
}

// Login authenticates email and password. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (_ *LoginResult, err error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer func() { endSpan(span, err) }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncLogin("invalid_credentials")
			s.logger.InfoContext(ctx, "login rejected", "reason", "unknown_email")
			return nil, dErrors.New(dErrors.CodeUnauthorized, msgInvalidCredentials)
		}
		s.metrics.IncLogin("error")
		s.logger.ErrorContext(ctx, "failed to load user for login", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	span.SetAttributes(userAttr(user.ID))

	if !s.passwords.Verify(password, user.PasswordHash) {
		s.metrics.IncLogin("invalid_credentials")
		s.logger.InfoContext(ctx, "login rejected", "reason", "bad_password", "user_id", user.ID.String())
		return nil, dErrors.New(dErrors.CodeUnauthorized, msgInvalidCredentials)
	}
	if !user.IsActive {
		s.metrics.IncLogin("inactive")
		s.logger.InfoContext(ctx, "login rejected", "reason", "inactive", "user_id", user.ID.String())
		return nil, dErrors.New(dErrors.CodeForbidden, "User account is not active")
	}

	subject := user.ID.String()
	access, err := s.tokens.Issue(token.Access, token.Claims{Role: user.Role, RegisteredClaims: subjectClaims(subject)})
	if err != nil {
		s.metrics.IncLogin("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	refresh, err := s.tokens.Issue(token.Refresh, token.Claims{RegisteredClaims: subjectClaims(subject)})
	if err != nil {
		s.metrics.IncLogin("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue refresh token")
	}

	ttl := s.tokens.TTL(token.Refresh)
	if err := s.sessions.Put(ctx, user.ID, refresh, ttl); err != nil {
		s.metrics.IncLogin("error")
		s.logger.ErrorContext(ctx, "failed to store session", "error", err, "user_id", subject)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}

	s.metrics.IncLogin("success")
	s.logger.InfoContext(ctx, "login succeeded", "user_id", subject)
	return &LoginResult{AccessToken: access, RefreshToken: refresh, RefreshTTL: ttl}, nil
}

// Refresh exchanges the stored refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "Refresh")
	defer func() { endSpan(span, err) }()

	if refreshToken == "" {
		s.metrics.IncRefresh("missing")
		return "", dErrors.New(dErrors.CodeUnauthorized, "Refresh token missing")
	}

	claims, err := s.tokens.Verify(token.Refresh, refreshToken)
	if err != nil {
		s.metrics.IncRefresh("invalid_token")
		s.tokenFailure(ctx, token.Refresh, err)
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid refresh token")
	}
	userID, err := claims.UserID()
	if err != nil {
		s.metrics.IncRefresh("invalid_token")
		s.logger.WarnContext(ctx, "refresh token subject is not a user id", "error", err)
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid refresh token")
	}
	span.SetAttributes(userAttr(userID))

	stored, err := s.sessions.Get(ctx, userID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncRefresh("error")
		s.logger.ErrorContext(ctx, "failed to read session", "error", err, "user_id", userID.String())
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to read session")
	}
	if err != nil || subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		s.metrics.IncRefresh("session_mismatch")
		s.logger.InfoContext(ctx, "refresh rejected", "reason", "session_mismatch", "user_id", userID.String())
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid refresh token")
	}

	access, err := s.tokens.Issue(token.Access, token.Claims{RegisteredClaims: subjectClaims(userID.String())})
	if err != nil {
		s.metrics.IncRefresh("error")
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	s.metrics.IncRefresh("success")
	return access, nil
}

// Logout deletes the session named by a decodable refresh token. Missing or
// undecodable tokens and store failures are logged, never returned, so
// logout stays idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) (err error) {
	ctx, span := s.startSpan(ctx, "Logout")
	defer func() { endSpan(span, err) }()

	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.Verify(token.Refresh, refreshToken)
	if err != nil {
		s.tokenFailure(ctx, token.Refresh, err, "op", "logout")
		return nil
	}
	userID, err := claims.UserID()
	if err != nil {
		s.logger.WarnContext(ctx, "logout token subject is not a user id", "error", err)
		return nil
	}
	span.SetAttributes(userAttr(userID))

	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete session", "error", err, "user_id", userID.String())
		return nil
	}
	s.logger.InfoContext(ctx, "logout", "user_id", userID.String())
	return nil
}
