package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/database/models"
)

// Authenticator defines the account and session operations.
type Authenticator interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*models.User, error)
	AuthenticateWithPassword(ctx context.Context, input PasswordLoginInput) (string, error)
	AuthenticateWithGitHub(ctx context.Context, code string) (string, error)
	RequestPasswordRecover(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, password string) error
	GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// GitHubExchanger turns an OAuth authorization code into a GitHub identity.
type GitHubExchanger interface {
	Exchange(ctx context.Context, code string) (*GitHubIdentity, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator   = (*Service)(nil)
	_ TokenService    = (*JWTService)(nil)
	_ GitHubExchanger = (*GitHubOAuth)(nil)
)
