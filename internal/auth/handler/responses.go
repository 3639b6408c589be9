package handler

import "intake/internal/auth/models"

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func newTokenResponse(access string) TokenResponse {
	return TokenResponse{AccessToken: access, TokenType: "bearer"}
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// MeResponse is the profile of the authenticated principal.
type MeResponse struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FirstInitial string `json:"first_initial"`
}

func newMeResponse(u *models.User) MeResponse {
	return MeResponse{
		UserID:       u.ID.String(),
		Email:        u.Email,
		Role:         u.Role,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		FirstInitial: u.FirstInitial(),
	}
}
