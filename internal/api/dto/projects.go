package dto

import (
	"time"

	"github.com/hugh/nextsaas/internal/api/validation"
	"github.com/hugh/nextsaas/internal/database/models"
)

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r ProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if msg := validation.ValidateName(r.Name); msg != "" {
		errors["name"] = msg
	}
	if len(r.Description) > 2000 {
		errors["description"] = "Description must be at most 2000 characters"
	}
	return errors
}

type ProjectDTO struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Slug           string       `json:"slug"`
	AvatarURL      *string      `json:"avatar_url"`
	OrganizationID string       `json:"organization_id"`
	OwnerID        string       `json:"owner_id"`
	Owner          *UserSummary `json:"owner,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

func NewProjectDTO(p *models.Project) ProjectDTO {
	return ProjectDTO{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Slug:           p.Slug,
		AvatarURL:      p.AvatarURL,
		OrganizationID: p.OrganizationID.String(),
		OwnerID:        p.OwnerID.String(),
		Owner:          NewUserSummary(p.Owner),
		CreatedAt:      p.CreatedAt,
	}
}

type ProjectResponse struct {
	Project ProjectDTO `json:"project"`
}

type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

func NewProjectListResponse(projects []models.Project) ProjectListResponse {
	items := make([]ProjectDTO, 0, len(projects))
	for i := range projects {
		items = append(items, NewProjectDTO(&projects[i]))
	}
	return ProjectListResponse{Projects: items}
}

type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
	Slug      string `json:"slug"`
}
