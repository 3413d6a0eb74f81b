package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hugh/nextsaas/internal/api/dto"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/auth"
)

type AuthHandler struct {
	auth   auth.Authenticator
	logger *slog.Logger
}

func NewAuthHandler(authService auth.Authenticator, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{auth: authService, logger: logger}
}

// CreateAccount handles POST /users
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.auth.CreateAccount(r.Context(), auth.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProfileResponse{User: dto.NewUserDTO(user)})
}

// PasswordLogin handles POST /sessions/password
func (h *AuthHandler) PasswordLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.AuthenticateWithPassword(r.Context(), auth.PasswordLoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TokenResponse{Token: token})
}

// GitHubLogin handles POST /sessions/github
func (h *AuthHandler) GitHubLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.GitHubLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.AuthenticateWithGitHub(r.Context(), req.Code)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TokenResponse{Token: token})
}

// RequestPasswordRecover handles POST /password/recover. The response is the
// same whether or not the email belongs to an account.
func (h *AuthHandler) RequestPasswordRecover(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordRecoverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.auth.RequestPasswordRecover(r.Context(), req.Email); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ResetPassword handles POST /password/reset
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Code, req.Password); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetProfile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{User: dto.NewUserDTO(user)})
}
