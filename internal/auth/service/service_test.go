package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"intake/internal/auth/models"
	"intake/internal/auth/password"
	"intake/internal/auth/service/mocks"
	"intake/internal/auth/token"
	"intake/internal/notification"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	users    *mocks.MockUserStore
	sessions *mocks.MockSessionStore
	notifier *mocks.MockNotifier
	codec    *token.Codec
	hasher   password.Hasher
	service  *Service
	now      time.Time
	user     *models.User
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserStore(s.ctrl)
	s.sessions = mocks.NewMockSessionStore(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.codec = token.New(token.Config{
		AccessSecret:      "access-secret",
		RefreshSecret:     "refresh-secret",
		EmailSecret:       "email-secret",
		AccessTTL:         30 * time.Minute,
		RefreshTTL:        7 * 24 * time.Hour,
		ForgotPasswordTTL: time.Hour,
		RegisterTTL:       72 * time.Hour,
	}, token.WithClock(func() time.Time { return s.now }))
	s.hasher = password.Hasher{Cost: bcrypt.MinCost}
	s.service = New(s.users, s.sessions, s.codec, s.hasher,
		WithNotifier(s.notifier),
		WithSetPasswordURL("https://intake.example/set-password"),
	)

	digest, err := s.hasher.Hash("correct horse")
	s.Require().NoError(err)
	s.user = &models.User{
		ID:           id.NewUserID(),
		Email:        "nurse@example.com",
		PasswordHash: digest,
		Role:         "clinician",
		FirstName:    "ada",
		IsActive:     true,
	}
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) issue(kind token.Kind, subject string) string {
	tok, err := s.codec.Issue(kind, token.Claims{RegisteredClaims: subjectClaims(subject)})
	s.Require().NoError(err)
	return tok
}

func (s *ServiceSuite) TestLogin() {
	ctx := context.Background()

	s.Run("issues access and refresh tokens and stores the session", func() {
		var stored string
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(s.user, nil)
		s.sessions.EXPECT().Put(gomock.Any(), s.user.ID, gomock.Any(), 7*24*time.Hour).
			DoAndReturn(func(_ context.Context, _ id.UserID, tok string, _ time.Duration) error {
				stored = tok
				return nil
			})

		result, err := s.service.Login(ctx, s.user.Email, "correct horse")
		s.Require().NoError(err)
		s.Equal(stored, result.RefreshToken)
		s.Equal(7*24*time.Hour, result.RefreshTTL)

		claims, err := s.codec.Verify(token.Access, result.AccessToken)
		s.Require().NoError(err)
		s.Equal(s.user.ID.String(), claims.Subject)
		s.Equal("clinician", claims.Role)

		refreshClaims, err := s.codec.Verify(token.Refresh, result.RefreshToken)
		s.Require().NoError(err)
		s.Empty(refreshClaims.Role)
	})

	s.Run("unknown email is unauthorized", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Login(ctx, "ghost@example.com", "correct horse")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Contains(err.Error(), "Invalid credentials")
	})

	s.Run("wrong password is unauthorized with the same message", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(s.user, nil)

		_, err := s.service.Login(ctx, s.user.Email, "wrong")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Contains(err.Error(), "Invalid credentials")
	})

	s.Run("inactive principal is forbidden after a correct password", func() {
		inactive := *s.user
		inactive.IsActive = false
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(&inactive, nil)

		_, err := s.service.Login(ctx, s.user.Email, "correct horse")
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("session store failure is internal", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(s.user, nil)
		s.sessions.EXPECT().Put(gomock.Any(), s.user.ID, gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		_, err := s.service.Login(ctx, s.user.Email, "correct horse")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("user store failure is internal", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(nil, errors.New("db down"))

		_, err := s.service.Login(ctx, s.user.Email, "correct horse")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestRefresh() {
	ctx := context.Background()

	s.Run("matching session yields a subject-only access token", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		s.sessions.EXPECT().Get(gomock.Any(), s.user.ID).Return(refresh, nil)

		access, err := s.service.Refresh(ctx, refresh)
		s.Require().NoError(err)
		claims, err := s.codec.Verify(token.Access, access)
		s.Require().NoError(err)
		s.Equal(s.user.ID.String(), claims.Subject)
		s.Empty(claims.Role)
	})

	s.Run("missing cookie is unauthorized", func() {
		_, err := s.service.Refresh(ctx, "")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("tokens of another kind are unauthorized", func() {
		access := s.issue(token.Access, s.user.ID.String())
		_, err := s.service.Refresh(ctx, access)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("garbage is unauthorized", func() {
		_, err := s.service.Refresh(ctx, "not-a-jwt")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("absent session is unauthorized", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		s.sessions.EXPECT().Get(gomock.Any(), s.user.ID).Return("", sentinel.ErrNotFound)

		_, err := s.service.Refresh(ctx, refresh)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("superseded refresh token is unauthorized", func() {
		old := s.issue(token.Refresh, s.user.ID.String())
		s.now = s.now.Add(time.Second)
		current := s.issue(token.Refresh, s.user.ID.String())
		s.Require().NotEqual(old, current)
		s.sessions.EXPECT().Get(gomock.Any(), s.user.ID).Return(current, nil)

		_, err := s.service.Refresh(ctx, old)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired refresh token is unauthorized", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		s.now = s.now.Add(8 * 24 * time.Hour)

		_, err := s.service.Refresh(ctx, refresh)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("session store failure is internal", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		s.sessions.EXPECT().Get(gomock.Any(), s.user.ID).Return("", errors.New("redis down"))

		_, err := s.service.Refresh(ctx, refresh)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestLogout() {
	ctx := context.Background()

	s.Run("deletes the session named by the token", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		s.sessions.EXPECT().Delete(gomock.Any(), s.user.ID).Return(nil)

		s.NoError(s.service.Logout(ctx, refresh))
	})

	s.Run("missing token is a no-op", func() {
		s.NoError(s.service.Logout(ctx, ""))
	})

	s.Run("undecodable token is ignored", func() {
		s.NoError(s.service.Logout(ctx, "garbage"))
	})

	s.Run("store failure is logged and logout succeeds", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		s.sessions.EXPECT().Delete(gomock.Any(), s.user.ID).Return(errors.New("redis down"))

		s.NoError(s.service.Logout(ctx, refresh))
	})
}

func (s *ServiceSuite) TestForgotPassword() {
	ctx := context.Background()

	s.Run("sends a set-password link for a known principal", func() {
		var sent notification.Message
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(s.user, nil)
		s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg notification.Message) error {
				sent = msg
				return nil
			})

		msg := s.service.ForgotPassword(ctx, s.user.Email)
		s.Equal(MessageResetLinkSent, msg)
		s.Equal(notification.TemplateForgotPassword, sent.Template)
		s.Equal(s.user.Email, sent.To)
		s.Contains(sent.Link, "https://intake.example/set-password?token=")
	})

	s.Run("unknown email returns the same message and sends nothing", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, sentinel.ErrNotFound)

		s.Equal(MessageResetLinkSent, s.service.ForgotPassword(ctx, "ghost@example.com"))
	})

	s.Run("dispatch failure is not surfaced", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), s.user.Email).Return(s.user, nil)
		s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		s.Equal(MessageResetLinkSent, s.service.ForgotPassword(ctx, s.user.Email))
	})
}

func (s *ServiceSuite) TestSetPassword() {
	ctx := context.Background()

	s.Run("forgot-password token sets the password", func() {
		tok := s.issue(token.EmailForgotPassword, s.user.ID.String())
		var digest string
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(s.user, nil)
		s.users.EXPECT().SetPassword(gomock.Any(), s.user.ID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.UserID, hash string, _ time.Time) error {
				digest = hash
				return nil
			})

		msg, err := s.service.SetPassword(ctx, tok, "new secret")
		s.Require().NoError(err)
		s.Equal(MessagePasswordSet, msg)
		s.True(s.hasher.Verify("new secret", digest))
	})

	s.Run("register token is accepted", func() {
		tok := s.issue(token.EmailRegister, s.user.ID.String())
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(s.user, nil)
		s.users.EXPECT().SetPassword(gomock.Any(), s.user.ID, gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.SetPassword(ctx, tok, "new secret")
		s.NoError(err)
	})

	s.Run("access token is unauthorized", func() {
		tok := s.issue(token.Access, s.user.ID.String())
		_, err := s.service.SetPassword(ctx, tok, "new secret")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired token is unauthorized", func() {
		tok := s.issue(token.EmailForgotPassword, s.user.ID.String())
		s.now = s.now.Add(2 * time.Hour)
		_, err := s.service.SetPassword(ctx, tok, "new secret")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("missing principal is not found", func() {
		tok := s.issue(token.EmailForgotPassword, s.user.ID.String())
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.SetPassword(ctx, tok, "new secret")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestEmailTokens() {
	ctx := context.Background()

	s.Run("issued register token verifies only as register", func() {
		tok, err := s.service.IssueEmailToken(s.user.ID, token.EmailRegister)
		s.Require().NoError(err)

		claims, err := s.service.VerifyEmailToken(ctx, tok, token.EmailRegister)
		s.Require().NoError(err)
		s.Equal(s.user.ID.String(), claims.Subject)

		_, err = s.service.VerifyEmailToken(ctx, tok, token.EmailForgotPassword)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("non-email kinds are rejected", func() {
		_, err := s.service.IssueEmailToken(s.user.ID, token.Access)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestSendRegisterLink() {
	ctx := context.Background()

	s.Run("sends a register token that set-password accepts", func() {
		var sent notification.Message
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(s.user, nil)
		s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg notification.Message) error {
				sent = msg
				return nil
			})

		s.Require().NoError(s.service.SendRegisterLink(ctx, s.user.ID))
		s.Equal(notification.TemplateRegister, sent.Template)
		s.Equal(s.user.Email, sent.To)

		u, err := url.Parse(sent.Link)
		s.Require().NoError(err)
		_, err = s.service.VerifyEmailToken(ctx, u.Query().Get("token"), token.EmailRegister)
		s.NoError(err)
	})

	s.Run("dispatch failure is reported", func() {
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(s.user, nil)
		s.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := s.service.SendRegisterLink(ctx, s.user.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("unknown user", func() {
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(nil, sentinel.ErrNotFound)
		err := s.service.SendRegisterLink(ctx, s.user.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestAuthenticate() {
	ctx := context.Background()

	s.Run("active principal resolves with role from the store", func() {
		access := s.issue(token.Access, s.user.ID.String())
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(s.user, nil)

		principal, err := s.service.Authenticate(ctx, access)
		s.Require().NoError(err)
		s.Equal(s.user.ID, principal.UserID)
		s.Equal("clinician", principal.Role)
	})

	s.Run("inactive principal is unauthorized", func() {
		inactive := *s.user
		inactive.IsActive = false
		access := s.issue(token.Access, s.user.ID.String())
		s.users.EXPECT().FindByID(gomock.Any(), s.user.ID).Return(&inactive, nil)

		_, err := s.service.Authenticate(ctx, access)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("refresh token is not an access token", func() {
		refresh := s.issue(token.Refresh, s.user.ID.String())
		_, err := s.service.Authenticate(ctx, refresh)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
