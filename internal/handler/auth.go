package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pictor/pictor/internal/handler/dto"
	"github.com/pictor/pictor/internal/service"
)

// AuthServicer is the auth service surface the handler needs.
type AuthServicer interface {
	Register(ctx context.Context, input service.RegisterInput) (string, error)
	Login(ctx context.Context, input service.LoginInput) (string, error)
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	svc    AuthServicer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc AuthServicer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	token, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, r, err)
		return
	}

	h.logger.Info("user_registered", "username", req.Username)

	writeJSON(w, http.StatusCreated, dto.TokenResponse{Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	token, err := h.svc.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// handleAuthError maps auth service errors to HTTP responses.
// Unexpected errors return a generic message; detail stays in the log.
func (h *AuthHandler) handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Username and password required")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters", service.MinPasswordLength))
	case errors.Is(err, service.ErrUsernameExists):
		writeError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		h.logger.Error("auth request failed",
			"error", err,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
