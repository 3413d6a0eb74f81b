package models

import "github.com/google/uuid"

type TokenType string

const (
	TokenPasswordRecover TokenType = "PASSWORD_RECOVER"
)

// Token is a single-use credential; its ID is the code handed to the user.
type Token struct {
	Base
	Type   TokenType `gorm:"type:varchar(32);not null" json:"type"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
}

func (Token) TableName() string {
	return "tokens"
}

type AccountProvider string

const (
	ProviderGitHub AccountProvider = "GITHUB"
)

// Account links a user to an external identity provider.
type Account struct {
	Base
	Provider          AccountProvider `gorm:"type:varchar(16);not null;uniqueIndex:idx_accounts_provider_user" json:"provider"`
	ProviderAccountID string          `gorm:"not null;uniqueIndex" json:"provider_account_id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_provider_user" json:"user_id"`
	// AccessToken is stored encrypted.
	AccessToken string `json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}
