package models

import (
	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/permissions"
)

type Organization struct {
	Base
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	// Domain is matched against the email domain of new accounts when
	// ShouldAttachUsersByDomain is set.
	Domain                    *string   `gorm:"uniqueIndex" json:"domain"`
	ShouldAttachUsersByDomain bool      `gorm:"not null;default:false" json:"should_attach_users_by_domain"`
	AvatarURL                 *string   `json:"avatar_url"`
	OwnerID                   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (Organization) SubjectType() permissions.SubjectType {
	return permissions.SubjectOrganization
}

// AttachesDomain reports whether accounts with the given email domain join
// this organization automatically.
func (o Organization) AttachesDomain(domain string) bool {
	return o.ShouldAttachUsersByDomain && o.Domain != nil && *o.Domain == domain
}

// Member links a user to an organization with a role.
type Member struct {
	Base
	Role           permissions.Role `gorm:"type:varchar(16);not null;default:'MEMBER'" json:"role"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_members_org_user" json:"organization_id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_members_org_user" json:"user_id"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Member) TableName() string {
	return "members"
}
