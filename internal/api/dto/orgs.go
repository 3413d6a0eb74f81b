package dto

import (
	"strings"
	"time"

	"github.com/hugh/nextsaas/internal/api/validation"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/permissions"
)

// OrganizationRequest is the body of both create and update.
type OrganizationRequest struct {
	Name                      string  `json:"name"`
	Domain                    *string `json:"domain"`
	ShouldAttachUsersByDomain bool    `json:"should_attach_users_by_domain"`
}

func (r OrganizationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if msg := validation.ValidateName(r.Name); msg != "" {
		errors["name"] = msg
	}
	if r.Domain != nil && strings.TrimSpace(*r.Domain) != "" && !validation.IsValidDomain(strings.TrimSpace(*r.Domain)) {
		errors["domain"] = "Invalid domain format"
	}
	if r.ShouldAttachUsersByDomain && (r.Domain == nil || strings.TrimSpace(*r.Domain) == "") {
		errors["domain"] = "Domain is required to attach users by domain"
	}

	return errors
}

type TransferOwnershipRequest struct {
	TransferToUserID string `json:"transfer_to_user_id"`
}

func (r TransferOwnershipRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !validation.IsValidUUID(r.TransferToUserID) {
		errors["transfer_to_user_id"] = "Invalid user ID"
	}
	return errors
}

type UpdateMemberRequest struct {
	Role string `json:"role"`
}

func (r UpdateMemberRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if _, err := permissions.ParseRole(r.Role); err != nil {
		errors["role"] = "Role must be one of ADMIN, MEMBER, BILLING"
	}
	return errors
}

type OrganizationDTO struct {
	ID                        string    `json:"id"`
	Name                      string    `json:"name"`
	Slug                      string    `json:"slug"`
	Domain                    *string   `json:"domain"`
	ShouldAttachUsersByDomain bool      `json:"should_attach_users_by_domain"`
	AvatarURL                 *string   `json:"avatar_url"`
	OwnerID                   string    `json:"owner_id"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

func NewOrganizationDTO(o *models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:                        o.ID.String(),
		Name:                      o.Name,
		Slug:                      o.Slug,
		Domain:                    o.Domain,
		ShouldAttachUsersByDomain: o.ShouldAttachUsersByDomain,
		AvatarURL:                 o.AvatarURL,
		OwnerID:                   o.OwnerID.String(),
		CreatedAt:                 o.CreatedAt,
		UpdatedAt:                 o.UpdatedAt,
	}
}

type OrganizationResponse struct {
	Organization OrganizationDTO `json:"organization"`
}

type CreateOrganizationResponse struct {
	OrganizationID string `json:"organization_id"`
	Slug           string `json:"slug"`
}

type OrganizationListItem struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	AvatarURL *string          `json:"avatar_url"`
	Role      permissions.Role `json:"role"`
}

type OrganizationListResponse struct {
	Organizations []OrganizationListItem `json:"organizations"`
}

func NewOrganizationListResponse(list []orgs.OrganizationWithRole) OrganizationListResponse {
	items := make([]OrganizationListItem, 0, len(list))
	for _, o := range list {
		items = append(items, OrganizationListItem{
			ID:        o.ID.String(),
			Name:      o.Name,
			Slug:      o.Slug,
			AvatarURL: o.AvatarURL,
			Role:      o.Role,
		})
	}
	return OrganizationListResponse{Organizations: items}
}

type MembershipDTO struct {
	ID             string           `json:"id"`
	Role           permissions.Role `json:"role"`
	OrganizationID string           `json:"organization_id"`
	UserID         string           `json:"user_id"`
}

type MembershipResponse struct {
	Membership MembershipDTO `json:"membership"`
}

func NewMembershipResponse(m *orgs.Membership) MembershipResponse {
	return MembershipResponse{Membership: MembershipDTO{
		ID:             m.Member.ID.String(),
		Role:           m.Member.Role,
		OrganizationID: m.Member.OrganizationID.String(),
		UserID:         m.Member.UserID.String(),
	}}
}

type MemberDTO struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Role      permissions.Role `json:"role"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	AvatarURL *string          `json:"avatar_url"`
}

type MemberListResponse struct {
	Members []MemberDTO `json:"members"`
}

func NewMemberListResponse(members []models.Member) MemberListResponse {
	items := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		item := MemberDTO{
			ID:     m.ID.String(),
			UserID: m.UserID.String(),
			Role:   m.Role,
		}
		if m.User != nil {
			item.Name = m.User.Name
			item.Email = m.User.Email
			item.AvatarURL = m.User.AvatarURL
		}
		items = append(items, item)
	}
	return MemberListResponse{Members: items}
}

type BillingResponse struct {
	Billing orgs.Billing `json:"billing"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
