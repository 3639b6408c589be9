package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"intake/internal/auth/password"
	"intake/internal/auth/token"
	"intake/internal/notification"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/sentinel"
	"intake/pkg/requestcontext"
)

func subjectClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: subject}
}

func isEmailKind(kind token.Kind) bool {
	return kind == token.EmailForgotPassword || kind == token.EmailRegister
}

// IssueEmailToken mints a single-purpose email token for userID.
func (s *Service) IssueEmailToken(userID id.UserID, kind token.Kind) (string, error) {
	if !isEmailKind(kind) {
		return "", dErrors.New(dErrors.CodeBadRequest, "not an email token kind")
	}
	if userID.IsNil() {
		return "", dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	tok, err := s.tokens.Issue(kind, token.Claims{RegisteredClaims: subjectClaims(userID.String())})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue email token")
	}
	return tok, nil
}

// VerifyEmailToken checks tok against kind. Any failure is Unauthorized.
func (s *Service) VerifyEmailToken(ctx context.Context, tok string, kind token.Kind) (*token.Claims, error) {
	if !isEmailKind(kind) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "not an email token kind")
	}
	claims, err := s.tokens.Verify(kind, tok)
	if err != nil {
		s.tokenFailure(ctx, kind, err)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

// ForgotPassword sends a set-password link when email belongs to a principal.
// The returned message is the same whether or not it does.
func (s *Service) ForgotPassword(ctx context.Context, email string) string {
	ctx, span := s.startSpan(ctx, "ForgotPassword")
	defer span.End()

	s.metrics.IncPasswordResetRequest()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to load user for password reset", "error", err)
		}
		return MessageResetLinkSent
	}
	span.SetAttributes(userAttr(user.ID))

	tok, err := s.IssueEmailToken(user.ID, token.EmailForgotPassword)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue password reset token", "error", err, "user_id", user.ID.String())
		return MessageResetLinkSent
	}

	msg := notification.Message{
		Template: notification.TemplateForgotPassword,
		To:       user.Email,
		Link:     s.setPasswordLink(tok),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to dispatch password reset link", "error", err, "user_id", user.ID.String())
	}
	return MessageResetLinkSent
}

// SendRegisterLink dispatches a set-password link carrying a register token
// to a newly provisioned principal. Unlike ForgotPassword it reports failures,
// since the caller is an operator.
func (s *Service) SendRegisterLink(ctx context.Context, userID id.UserID) (err error) {
	ctx, span := s.startSpan(ctx, "SendRegisterLink")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(userAttr(userID))

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	tok, err := s.IssueEmailToken(user.ID, token.EmailRegister)
	if err != nil {
		return err
	}
	msg := notification.Message{
		Template: notification.TemplateRegister,
		To:       user.Email,
		Link:     s.setPasswordLink(tok),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to dispatch register link")
	}
	return nil
}

func (s *Service) setPasswordLink(tok string) string {
	u, err := url.Parse(s.setPasswordURL)
	if err != nil {
		return s.setPasswordURL + "?token=" + url.QueryEscape(tok)
	}
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}

// SetPassword accepts a forgot-password or register token, stores the new
// password and activates the principal.
func (s *Service) SetPassword(ctx context.Context, tok, newPassword string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "SetPassword")
	defer func() { endSpan(span, err) }()

	claims, kind, err := s.verifyAnyEmailToken(tok)
	if err != nil {
		s.tokenFailure(ctx, token.EmailForgotPassword, err, "op", "set_password")
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token")
	}
	span.SetAttributes(userAttr(userID))

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	digest, err := s.passwords.Hash(newPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	if err := s.users.SetPassword(ctx, userID, digest, requestcontext.Now(ctx)); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		s.logger.ErrorContext(ctx, "failed to store password", "error", err, "user_id", userID.String())
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to store password")
	}

	s.metrics.IncPasswordSet(kind.String())
	s.logger.InfoContext(ctx, "password set",
		"user_id", userID.String(),
		"kind", kind.String(),
		"activated", !user.IsActive,
	)
	return MessagePasswordSet, nil
}

// verifyAnyEmailToken tries the forgot-password kind first, then register.
func (s *Service) verifyAnyEmailToken(tok string) (*token.Claims, token.Kind, error) {
	claims, err := s.tokens.Verify(token.EmailForgotPassword, tok)
	if err == nil {
		return claims, token.EmailForgotPassword, nil
	}
	claims, regErr := s.tokens.Verify(token.EmailRegister, tok)
	if regErr == nil {
		return claims, token.EmailRegister, nil
	}
	return nil, 0, errors.Join(err, regErr)
}
