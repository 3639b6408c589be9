package service

import (
	"context"
	"errors"

	"intake/internal/auth/models"
	"intake/internal/auth/token"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	authmw "intake/pkg/platform/middleware/auth"
	"intake/pkg/platform/sentinel"
)

// Me returns the profile of the authenticated principal.
func (s *Service) Me(ctx context.Context, userID id.UserID) (*models.User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "user ID required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Could not validate credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Authenticate resolves a bearer access token to an active principal. The
// role is read from the store, so tokens minted by Refresh carry the same
// authority as those minted by Login.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*authmw.Principal, error) {
	claims, err := s.tokens.Verify(token.Access, accessToken)
	if err != nil {
		s.tokenFailure(ctx, token.Access, err)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Could not validate credentials")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Could not validate credentials")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Could not validate credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if !user.IsActive {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Could not validate credentials")
	}
	return &authmw.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}
