package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/api/dto"
	"github.com/hugh/nextsaas/internal/api/middleware"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/permissions"
)

type OrganizationHandler struct {
	orgs   *orgs.Service
	logger *slog.Logger
}

func NewOrganizationHandler(service *orgs.Service, logger *slog.Logger) *OrganizationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrganizationHandler{orgs: service, logger: logger}
}

// Create handles POST /organizations
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OrganizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	org, err := h.orgs.Create(r.Context(), middleware.GetUserID(r.Context()), orgs.CreateInput{
		Name:                      req.Name,
		Domain:                    req.Domain,
		ShouldAttachUsersByDomain: req.ShouldAttachUsersByDomain,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateOrganizationResponse{
		OrganizationID: org.ID.String(),
		Slug:           org.Slug,
	})
}

// List handles GET /organizations
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.orgs.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewOrganizationListResponse(list))
}

// Get handles GET /organizations/{slug}
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.orgs.GetMembership(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrganizationResponse{Organization: dto.NewOrganizationDTO(&m.Organization)})
}

// Membership handles GET /organizations/{slug}/membership
func (h *OrganizationHandler) Membership(w http.ResponseWriter, r *http.Request) {
	m, err := h.orgs.GetMembership(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewMembershipResponse(m))
}

// Update handles PUT /organizations/{slug}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.OrganizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err := h.orgs.Update(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), orgs.UpdateInput{
		Name:                      req.Name,
		Domain:                    req.Domain,
		ShouldAttachUsersByDomain: req.ShouldAttachUsersByDomain,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Shutdown handles DELETE /organizations/{slug}
func (h *OrganizationHandler) Shutdown(w http.ResponseWriter, r *http.Request) {
	if err := h.orgs.Shutdown(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TransferOwnership handles PATCH /organizations/{slug}/owner
func (h *OrganizationHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferOwnershipRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	target := uuid.MustParse(req.TransferToUserID)
	err := h.orgs.TransferOwnership(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), target)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetAvatar handles PUT /organizations/{slug}/avatar. The request body is the
// image itself, typed by its Content-Type header.
func (h *OrganizationHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	url, err := h.orgs.SetAvatar(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "slug"),
		r.Header.Get("Content-Type"),
		r.Body,
	)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AvatarResponse{AvatarURL: url})
}

// Billing handles GET /organizations/{slug}/billing
func (h *OrganizationHandler) Billing(w http.ResponseWriter, r *http.Request) {
	billing, err := h.orgs.GetBilling(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BillingResponse{Billing: *billing})
}

// ListMembers handles GET /organizations/{slug}/members
func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.orgs.ListMembers(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewMemberListResponse(members))
}

// UpdateMember handles PUT /organizations/{slug}/members/{memberId}
func (h *OrganizationHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuidParam(r, "memberId", "member")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req dto.UpdateMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	err = h.orgs.UpdateMemberRole(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), memberID, permissions.Role(req.Role))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember handles DELETE /organizations/{slug}/members/{memberId}
func (h *OrganizationHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuidParam(r, "memberId", "member")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.orgs.RemoveMember(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "slug"), memberID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
