package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/nextsaas/internal/api/dto"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/invites"
	"github.com/hugh/nextsaas/internal/permissions"
)

type InviteHandler struct {
	invites *invites.Service
	logger  *slog.Logger
}

func NewInviteHandler(service *invites.Service, logger *slog.Logger) *InviteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InviteHandler{invites: service, logger: logger}
}

// Create handles POST /organizations/{slug}/invites
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	invite, err := h.invites.Create(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), req.Email, permissions.Role(req.Role))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateInviteResponse{InviteID: invite.ID.String()})
}

// List handles GET /organizations/{slug}/invites
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.invites.List(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewInviteListResponse(list))
}

// Revoke handles DELETE /organizations/{slug}/invites/{inviteId}
func (h *InviteHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	inviteID, err := uuidParam(r, "inviteId", "invite")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.invites.Revoke(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), inviteID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /invites/{inviteId}; no authentication required.
func (h *InviteHandler) Get(w http.ResponseWriter, r *http.Request) {
	inviteID, err := uuidParam(r, "inviteId", "invite")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	invite, err := h.invites.Get(r.Context(), inviteID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InviteResponse{Invite: dto.NewInviteDTO(invite)})
}

// Accept handles POST /invites/{inviteId}/accept
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	inviteID, err := uuidParam(r, "inviteId", "invite")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.invites.Accept(r.Context(), middleware.GetUserID(r.Context()), inviteID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reject handles POST /invites/{inviteId}/reject
func (h *InviteHandler) Reject(w http.ResponseWriter, r *http.Request) {
	inviteID, err := uuidParam(r, "inviteId", "invite")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.invites.Reject(r.Context(), middleware.GetUserID(r.Context()), inviteID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Pending handles GET /pending-invites
func (h *InviteHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.invites.PendingForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewInviteListResponse(list))
}
