package handler

import (
	"strings"

	dErrors "intake/pkg/domain-errors"
)

// bcrypt ignores input past 72 bytes, so longer passwords are rejected up front.
const maxPasswordBytes = 72

// LoginRequest is the HTTP request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.TrimSpace(r.Email)
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}

// ForgotPasswordRequest is the HTTP request body for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.TrimSpace(r.Email)
}

func (r *ForgotPasswordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	}
	return nil
}

// SetPasswordRequest is the HTTP request body for POST /auth/set-password.
type SetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r *SetPasswordRequest) Normalize() {
	if r == nil {
		return
	}
	r.Token = strings.TrimSpace(r.Token)
}

func (r *SetPasswordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Token == "" {
		return dErrors.New(dErrors.CodeValidation, "token is required")
	}
	if r.NewPassword == "" {
		return dErrors.New(dErrors.CodeValidation, "new_password is required")
	}
	if len(r.NewPassword) > maxPasswordBytes {
		return dErrors.New(dErrors.CodeValidation, "new_password must be at most 72 bytes")
	}
	return nil
}
