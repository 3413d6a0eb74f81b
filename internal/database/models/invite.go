package models

import (
	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/permissions"
)

// Invite is a pending offer for an email address to join an organization.
type Invite struct {
	Base
	Email          string           `gorm:"not null;uniqueIndex:idx_invites_email_org" json:"email"`
	Role           permissions.Role `gorm:"type:varchar(16);not null" json:"role"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invites_email_org" json:"organization_id"`
	AuthorID       *uuid.UUID       `gorm:"type:uuid;index" json:"author_id"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Author       *User         `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Invite) TableName() string {
	return "invites"
}

func (Invite) SubjectType() permissions.SubjectType {
	return permissions.SubjectInvite
}
