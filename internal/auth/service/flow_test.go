package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"intake/internal/auth/models"
	"intake/internal/auth/password"
	"intake/internal/auth/store/session"
	"intake/internal/auth/store/user"
	"intake/internal/auth/token"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
)

func newFlowService(t *testing.T, now *time.Time) (*Service, *user.InMemoryUserStore) {
	t.Helper()
	clock := func() time.Time { return *now }
	codec := token.New(token.Config{
		AccessSecret:      "a",
		RefreshSecret:     "r",
		EmailSecret:       "e",
		AccessTTL:         30 * time.Minute,
		RefreshTTL:        7 * 24 * time.Hour,
		ForgotPasswordTTL: time.Hour,
		RegisterTTL:       72 * time.Hour,
	}, token.WithClock(clock))
	users := user.New()
	sessions := session.NewInMemory(session.WithClock(clock))
	return New(users, sessions, codec, password.Hasher{Cost: bcrypt.MinCost}), users
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, users := newFlowService(t, &now)

	digest, err := password.Hasher{Cost: bcrypt.MinCost}.Hash("pw")
	require.NoError(t, err)
	u := &models.User{ID: id.NewUserID(), Email: "a@example.com", PasswordHash: digest, Role: "admin", IsActive: true}
	require.NoError(t, users.Save(ctx, u))

	t.Run("logout revokes refresh", func(t *testing.T) {
		login, err := svc.Login(ctx, "a@example.com", "pw")
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, login.RefreshToken))
		require.NoError(t, svc.Logout(ctx, login.RefreshToken))

		_, err = svc.Refresh(ctx, login.RefreshToken)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("second login in the same instant supersedes the first", func(t *testing.T) {
		first, err := svc.Login(ctx, "a@example.com", "pw")
		require.NoError(t, err)
		second, err := svc.Login(ctx, "a@example.com", "pw")
		require.NoError(t, err)
		require.NotEqual(t, first.RefreshToken, second.RefreshToken)

		_, err = svc.Refresh(ctx, first.RefreshToken)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		_, err = svc.Refresh(ctx, second.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("register token activates an inactive principal", func(t *testing.T) {
		invited := &models.User{ID: id.NewUserID(), Email: "new@example.com", Role: "clinician"}
		require.NoError(t, users.Save(ctx, invited))

		_, err := svc.Login(ctx, "new@example.com", "anything")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

		tok, err := svc.IssueEmailToken(invited.ID, token.EmailRegister)
		require.NoError(t, err)
		_, err = svc.SetPassword(ctx, tok, "chosen")
		require.NoError(t, err)

		login, err := svc.Login(ctx, "new@example.com", "chosen")
		require.NoError(t, err)
		principal, err := svc.Authenticate(ctx, login.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "clinician", principal.Role)
	})
}
