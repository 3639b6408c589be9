package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
)

// Principal is the authenticated identity placed in the request context.
type Principal struct {
	UserID id.UserID
	Email  string
	Role   string
}

// Authenticator resolves a bearer access token into an active principal.
// Any failure means the request is unauthenticated.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*Principal, error)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid bearer access token for an
// active principal, and otherwise stores the principal in the context.
func RequireAuth(authenticator Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			principal, err := authenticator.Authenticate(ctx, strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Could not validate credentials")
				return
			}

			ctx = requestcontext.WithPrincipal(ctx, principal.UserID, principal.Email, principal.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
