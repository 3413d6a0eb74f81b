package dto

import (
	"strings"

	"github.com/hugh/nextsaas/internal/api/validation"
	"github.com/hugh/nextsaas/internal/database/models"
)

type CreateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CreateAccountRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if msg := validation.ValidateName(r.Name); msg != "" {
		errors["name"] = msg
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(strings.TrimSpace(r.Email)) {
		errors["email"] = "Invalid email format"
	}
	if ok, msg := validation.IsValidPassword(r.Password); !ok {
		errors["password"] = msg
	}

	return errors
}

type PasswordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r PasswordLoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type GitHubLoginRequest struct {
	Code string `json:"code"`
}

func (r GitHubLoginRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Code == "" {
		errors["code"] = "Code is required"
	}
	return errors
}

type PasswordRecoverRequest struct {
	Email string `json:"email"`
}

func (r PasswordRecoverRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if !validation.IsValidEmail(strings.TrimSpace(r.Email)) {
		errors["email"] = "Invalid email format"
	}
	return errors
}

type PasswordResetRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (r PasswordResetRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Code == "" {
		errors["code"] = "Code is required"
	}
	if ok, msg := validation.IsValidPassword(r.Password); !ok {
		errors["password"] = msg
	}
	return errors
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

type ProfileResponse struct {
	User UserDTO `json:"user"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:        u.ID.String(),
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}
