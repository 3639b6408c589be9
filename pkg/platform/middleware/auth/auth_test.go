package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
)

type authenticatorFunc func(ctx context.Context, token string) (*Principal, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (*Principal, error) {
	return f(ctx, token)
}

type RequireAuthSuite struct {
	suite.Suite
	logger *slog.Logger
	userID id.UserID
}

func TestRequireAuthSuite(t *testing.T) {
	suite.Run(t, new(RequireAuthSuite))
}

func (s *RequireAuthSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.userID = id.NewUserID()
}

func (s *RequireAuthSuite) handler(auth Authenticator, reached *bool) http.Handler {
	return RequireAuth(auth, s.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		s.Equal(s.userID, requestcontext.UserID(r.Context()))
		s.Equal("clinician", requestcontext.Role(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))
}

func (s *RequireAuthSuite) TestRequireAuth() {
	valid := authenticatorFunc(func(_ context.Context, token string) (*Principal, error) {
		if token != "good-token" {
			return nil, errors.New("bad signature")
		}
		return &Principal{UserID: s.userID, Email: "a@example.com", Role: "clinician"}, nil
	})

	s.Run("valid bearer token reaches handler with principal", func() {
		reached := false
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		s.handler(valid, &reached).ServeHTTP(w, r)

		s.True(reached)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("missing header is rejected", func() {
		reached := false
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()

		s.handler(valid, &reached).ServeHTTP(w, r)

		s.False(reached)
		s.Equal(http.StatusUnauthorized, w.Code)
		assert.JSONEq(s.T(), `{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`, w.Body.String())
	})

	s.Run("invalid token is rejected", func() {
		reached := false
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		r.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()

		s.handler(valid, &reached).ServeHTTP(w, r)

		s.False(reached)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
