package models

import (
	"strings"

	"github.com/hugh/nextsaas/internal/permissions"
)

type User struct {
	Base
	Name         string  `json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string `json:"-"`
	AvatarURL    *string `json:"avatar_url"`
}

func (User) TableName() string {
	return "users"
}

func (User) SubjectType() permissions.SubjectType {
	return permissions.SubjectUser
}

// EmailDomain returns the part of the email after the last "@".
func (u User) EmailDomain() string {
	return EmailDomain(u.Email)
}

func EmailDomain(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return ""
	}
	return strings.ToLower(email[i+1:])
}
