package models

import (
	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/permissions"
)

type Project struct {
	Base
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	AvatarURL      *string   `json:"avatar_url"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

func (Project) SubjectType() permissions.SubjectType {
	return permissions.SubjectProject
}
