package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intake/internal/auth/models"
	"intake/internal/auth/service"
	"intake/internal/auth/token"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/httputil"
	"intake/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the session lifecycle operations used by the handler.
type Service interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) string
	SetPassword(ctx context.Context, tok, newPassword string) (string, error)
	VerifyEmailToken(ctx context.Context, tok string, kind token.Kind) (*token.Claims, error)
	Me(ctx context.Context, userID id.UserID) (*models.User, error)
}

// Handler wires /auth endpoints to the session lifecycle service.
type Handler struct {
	service Service
	logger  *slog.Logger
	cookies CookieConfig
}

// New constructs an auth handler with its dependencies.
func New(service Service, logger *slog.Logger, cookies CookieConfig) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		cookies: cookies,
	}
}

// Register mounts the public auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/refresh", h.HandleRefresh)
	r.Post("/auth/logout", h.HandleLogout)
	r.Post("/auth/forgot-password", h.HandleForgotPassword)
	r.Post("/auth/set-password", h.HandleSetPassword)
	r.Get("/auth/verify-token/{token}", h.HandleVerifyToken)
}

// RegisterProtected mounts endpoints that need an authenticated principal.
// The router must already carry the auth middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/auth/me", h.HandleMe)
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, h.cookies.refreshCookie(result.RefreshToken, result.RefreshTTL))
	httputil.WriteJSON(w, http.StatusOK, newTokenResponse(result.AccessToken))
}

// HandleRefresh handles POST /auth/refresh.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	access, err := h.service.Refresh(ctx, refreshCookieValue(r))
	if err != nil {
		h.logger.WarnContext(ctx, "refresh failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newTokenResponse(access))
}

// HandleLogout handles POST /auth/logout. The cookie is cleared and the
// request succeeds on every path.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.Logout(ctx, refreshCookieValue(r)); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	http.SetCookie(w, h.cookies.expiredCookie())
	httputil.WriteJSON(w, http.StatusOK, DetailResponse{Detail: "Logged out successfully"})
}

// HandleMe handles GET /auth/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	user, err := h.service.Me(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newMeResponse(user))
}

// HandleForgotPassword handles POST /auth/forgot-password.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ForgotPasswordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: h.service.ForgotPassword(ctx, req.Email)})
}

// HandleSetPassword handles POST /auth/set-password.
func (h *Handler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SetPasswordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	msg, err := h.service.SetPassword(ctx, req.Token, req.NewPassword)
	if err != nil {
		h.logger.WarnContext(ctx, "set password failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// HandleVerifyToken handles GET /auth/verify-token/{token}?token_type=.
// The body is a bare JSON boolean.
func (h *Handler) HandleVerifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenType := r.URL.Query().Get("token_type")
	if tokenType == "" {
		tokenType = string(token.EmailTypeForgotPassword)
	}
	kind, ok := token.ParseEmailType(tokenType)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "token_type must be forgot_password or register"))
		return
	}

	_, err := h.service.VerifyEmailToken(ctx, chi.URLParam(r, "token"), kind)
	httputil.WriteJSON(w, http.StatusOK, err == nil)
}
