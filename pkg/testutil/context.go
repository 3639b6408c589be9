package testutil

import (
	"net/http"

	id "intake/pkg/domain"
	"intake/pkg/requestcontext"
)

// WithPrincipal adds an authenticated principal to the request context.
// This simulates what the auth middleware does after a valid bearer token.
func WithPrincipal(req *http.Request, userID id.UserID, email, role string) *http.Request {
	ctx := requestcontext.WithPrincipal(req.Context(), userID, email, role)
	return req.WithContext(ctx)
}

// WithUserID adds a user ID to the request context.
// If the userID is not a valid UUID, it will not be added to the context.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return WithPrincipal(req, parsed, "", "")
}

// WithClient sets the client IP and user agent normally filled in by the
// metadata middleware.
func WithClient(req *http.Request, clientIP, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent)
	return req.WithContext(ctx)
}
