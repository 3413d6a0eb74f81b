// Package projects manages the projects of an organization.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/pkg/util"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, logger: logger}
}

type Input struct {
	Name        string
	Description string
}

var errNotFound = apperr.BadRequest("Project not found.")

func (s *Service) Create(ctx context.Context, userID uuid.UUID, orgSlug string, input Input) (*models.Project, error) {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionCreate, permissions.SubjectProject) {
		return nil, apperr.Unauthorized("You're not allowed to create new projects.")
	}

	slug, err := database.UniqueSlug(ctx, s.db, &models.Project{}, util.Slugify(input.Name))
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:           input.Name,
		Description:    input.Description,
		Slug:           slug,
		OrganizationID: m.Organization.ID,
		OwnerID:        userID,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", project.ID, "org_id", m.Organization.ID)
	return &project, nil
}

// List returns the organization's projects, newest first, with their owners.
func (s *Service) List(ctx context.Context, userID uuid.UUID, orgSlug string) ([]models.Project, error) {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionGet, permissions.SubjectProject) {
		return nil, apperr.Unauthorized("You're not allowed to see organization projects.")
	}

	var projects []models.Project
	err = s.db.WithContext(ctx).
		Preload("Owner").
		Where("organization_id = ?", m.Organization.ID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID, orgSlug, projectSlug string) (*models.Project, error) {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionGet, permissions.SubjectProject) {
		return nil, apperr.Unauthorized("You're not allowed to see this project.")
	}

	var project models.Project
	err = s.db.WithContext(ctx).
		Preload("Owner").
		Where("slug = ? AND organization_id = ?", projectSlug, m.Organization.ID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) find(ctx context.Context, orgID, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", projectID, orgID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, orgSlug string, projectID uuid.UUID, input Input) error {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return err
	}

	project, err := s.find(ctx, m.Organization.ID, projectID)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionUpdate, project) {
		return apperr.Unauthorized("You're not allowed to update this project.")
	}

	return s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":        input.Name,
			"description": input.Description,
		}).Error
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID, orgSlug string, projectID uuid.UUID) error {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return err
	}

	project, err := s.find(ctx, m.Organization.ID, projectID)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionDelete, project) {
		return apperr.Unauthorized("You're not allowed to delete this project.")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", project.ID).Error; err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", project.ID, "by", userID)
	return nil
}
