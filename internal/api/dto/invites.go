package dto

import (
	"strings"
	"time"

	"github.com/hugh/nextsaas/internal/api/validation"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
)

type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r CreateInviteRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !validation.IsValidEmail(strings.TrimSpace(r.Email)) {
		errors["email"] = "Invalid email format"
	}
	if _, err := permissions.ParseRole(r.Role); err != nil {
		errors["role"] = "Role must be one of ADMIN, MEMBER, BILLING"
	}
	return errors
}

type CreateInviteResponse struct {
	InviteID string `json:"invite_id"`
}

type InviteOrganization struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type InviteDTO struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Role         permissions.Role    `json:"role"`
	CreatedAt    time.Time           `json:"created_at"`
	Author       *UserSummary        `json:"author"`
	Organization *InviteOrganization `json:"organization,omitempty"`
}

func NewInviteDTO(i *models.Invite) InviteDTO {
	out := InviteDTO{
		ID:        i.ID.String(),
		Email:     i.Email,
		Role:      i.Role,
		CreatedAt: i.CreatedAt,
		Author:    NewUserSummary(i.Author),
	}
	if i.Organization != nil {
		out.Organization = &InviteOrganization{Name: i.Organization.Name, Slug: i.Organization.Slug}
	}
	return out
}

type InviteResponse struct {
	Invite InviteDTO `json:"invite"`
}

type InviteListResponse struct {
	Invites []InviteDTO `json:"invites"`
}

func NewInviteListResponse(invites []models.Invite) InviteListResponse {
	items := make([]InviteDTO, 0, len(invites))
	for i := range invites {
		items = append(items, NewInviteDTO(&invites[i]))
	}
	return InviteListResponse{Invites: items}
}
