// Package orgs manages organizations and their members.
package orgs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/internal/storage"
	"github.com/hugh/nextsaas/pkg/util"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	store  storage.ObjectStore
	logger *slog.Logger
}

// NewService creates the organization service. store may be nil, in which
// case avatar uploads are unavailable.
func NewService(db *gorm.DB, store storage.ObjectStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, store: store, logger: logger}
}

type CreateInput struct {
	Name                      string
	Domain                    *string
	ShouldAttachUsersByDomain bool
}

type UpdateInput struct {
	Name                      string
	Domain                    *string
	ShouldAttachUsersByDomain bool
}

// OrganizationWithRole is an organization listed for a user, with the role
// the user holds in it.
type OrganizationWithRole struct {
	models.Organization
	Role permissions.Role `json:"role"`
}

func normalizeDomain(domain *string) *string {
	if domain == nil {
		return nil
	}
	d := strings.ToLower(strings.TrimSpace(*domain))
	if d == "" {
		return nil
	}
	return &d
}

// checkDomain fails when another organization already claims domain.
func (s *Service) checkDomain(ctx context.Context, domain *string, exclude uuid.UUID) error {
	if domain == nil {
		return nil
	}

	q := s.db.WithContext(ctx).Model(&models.Organization{}).Where("domain = ?", *domain)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("checking domain: %w", err)
	}
	if count > 0 {
		return apperr.BadRequest("Another organization with same domain already exists.")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.Organization, error) {
	domain := normalizeDomain(input.Domain)
	if err := s.checkDomain(ctx, domain, uuid.Nil); err != nil {
		return nil, err
	}

	slug, err := database.UniqueSlug(ctx, s.db, &models.Organization{}, util.Slugify(input.Name))
	if err != nil {
		return nil, err
	}

	org := models.Organization{
		Name:                      input.Name,
		Slug:                      slug,
		Domain:                    domain,
		ShouldAttachUsersByDomain: input.ShouldAttachUsersByDomain,
		OwnerID:                   userID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		return tx.Create(&models.Member{
			OrganizationID: org.ID,
			UserID:         userID,
			Role:           permissions.RoleAdmin,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	s.logger.Info("organization created", "org_id", org.ID, "slug", org.Slug, "owner_id", userID)
	return &org, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrganizationWithRole, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	orgs := make([]OrganizationWithRole, 0, len(members))
	for _, m := range members {
		if m.Organization == nil {
			continue
		}
		orgs = append(orgs, OrganizationWithRole{
			Organization: *m.Organization,
			Role:         m.Role,
		})
	}
	return orgs, nil
}

func (s *Service) GetMembership(ctx context.Context, userID uuid.UUID, slug string) (*Membership, error) {
	return ResolveMembership(ctx, s.db, userID, slug)
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, slug string, input UpdateInput) error {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionUpdate, m.Organization) {
		return apperr.Unauthorized("You're not allowed to update this organization.")
	}

	domain := normalizeDomain(input.Domain)
	if err := s.checkDomain(ctx, domain, m.Organization.ID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", m.Organization.ID).
		Updates(map[string]interface{}{
			"name":                          input.Name,
			"domain":                        domain,
			"should_attach_users_by_domain": input.ShouldAttachUsersByDomain,
		}).Error
}

// Shutdown deletes the organization and everything that belongs to it.
func (s *Service) Shutdown(ctx context.Context, userID uuid.UUID, slug string) error {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionDelete, m.Organization) {
		return apperr.Unauthorized("You're not allowed to shutdown this organization.")
	}

	orgID := m.Organization.ID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("organization_id = ?", orgID).Delete(&models.Invite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organization_id = ?", orgID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organization_id = ?", orgID).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Organization{}, "id = ?", orgID).Error
	})
	if err != nil {
		return fmt.Errorf("shutting down organization: %w", err)
	}

	s.logger.Info("organization shut down", "org_id", orgID, "by", userID)
	return nil
}

// TransferOwnership hands the organization to another member, who becomes
// ADMIN. Either both changes are stored or neither is.
func (s *Service) TransferOwnership(ctx context.Context, userID uuid.UUID, slug string, targetUserID uuid.UUID) error {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionTransferOwnership, m.Organization) {
		return apperr.Unauthorized("You're not allowed to transfer this organization ownership.")
	}

	orgID := m.Organization.ID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Member
		err := tx.Where("organization_id = ? AND user_id = ?", orgID, targetUserID).First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadRequest("Target user is not a member of this organization.")
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Member{}).
			Where("id = ?", target.ID).
			Update("role", permissions.RoleAdmin).Error; err != nil {
			return err
		}
		return tx.Model(&models.Organization{}).
			Where("id = ?", orgID).
			Update("owner_id", targetUserID).Error
	})
}
