// Package invites handles invitations of email addresses into organizations.
package invites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/orgs"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/internal/tasks"
	"github.com/hugh/nextsaas/pkg/queue"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	queue  queue.Enqueuer
	logger *slog.Logger
}

// NewService creates the invite service. With a nil queue no invite emails
// are sent.
func NewService(db *gorm.DB, q queue.Enqueuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, queue: q, logger: logger}
}

var errNotFound = apperr.BadRequest("Invite not found.")

func (s *Service) Create(ctx context.Context, userID uuid.UUID, orgSlug, email string, role permissions.Role) (*models.Invite, error) {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionCreate, permissions.SubjectInvite) {
		return nil, apperr.Unauthorized("You're not allowed to create new invites.")
	}
	if !role.Valid() {
		return nil, apperr.BadRequest("Invalid role.")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	domain := models.EmailDomain(email)
	if m.Organization.AttachesDomain(domain) {
		return nil, apperr.BadRequest(fmt.Sprintf("Users with %q domain will join your organization automatically on login.", domain))
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Invite{}).
		Where("email = ? AND organization_id = ?", email, m.Organization.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("Another invite with same e-mail already exists.")
	}

	if err := s.db.WithContext(ctx).Model(&models.Member{}).
		Joins("JOIN users ON users.id = members.user_id").
		Where("members.organization_id = ? AND users.email = ?", m.Organization.ID, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.BadRequest("A member with this e-mail already belongs to your organization.")
	}

	invite := models.Invite{
		Email:          email,
		Role:           role,
		OrganizationID: m.Organization.ID,
		AuthorID:       &userID,
	}
	if err := s.db.WithContext(ctx).Create(&invite).Error; err != nil {
		return nil, fmt.Errorf("creating invite: %w", err)
	}

	s.enqueueEmail(ctx, invite.ID)
	return &invite, nil
}

func (s *Service) enqueueEmail(ctx context.Context, inviteID uuid.UUID) {
	if s.queue == nil {
		return
	}
	task, err := tasks.NewInviteEmailTask(tasks.InvitePayload{InviteID: inviteID})
	if err != nil {
		s.logger.Error("failed to build invite email task", "invite_id", inviteID, "error", err)
		return
	}
	if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
		s.logger.Error("failed to enqueue invite email", "invite_id", inviteID, "error", err)
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, orgSlug string) ([]models.Invite, error) {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionGet, permissions.SubjectInvite) {
		return nil, apperr.Unauthorized("You're not allowed to get organization invites.")
	}

	var invites []models.Invite
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("organization_id = ?", m.Organization.ID).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (s *Service) Revoke(ctx context.Context, userID uuid.UUID, orgSlug string, inviteID uuid.UUID) error {
	m, err := orgs.ResolveMembership(ctx, s.db, userID, orgSlug)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionDelete, permissions.SubjectInvite) {
		return apperr.Unauthorized("You're not allowed to delete an invite.")
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", inviteID, m.Organization.ID).
		Delete(&models.Invite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

// Get returns an invite with its organization and author. It needs no
// membership: the invite id is the credential.
func (s *Service) Get(ctx context.Context, inviteID uuid.UUID) (*models.Invite, error) {
	var invite models.Invite
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Preload("Author").
		First(&invite, "id = ?", inviteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// inviteFor loads the invite and checks it was sent to userID's email.
func (s *Service) inviteFor(ctx context.Context, userID, inviteID uuid.UUID) (*models.Invite, error) {
	var invite models.Invite
	err := s.db.WithContext(ctx).First(&invite, "id = ?", inviteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadRequest("User not found.")
	}
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(user.Email, invite.Email) {
		return nil, apperr.BadRequest("This invite belongs to another user.")
	}
	return &invite, nil
}

// Accept makes the user a member with the invited role and consumes the
// invite, in one transaction.
func (s *Service) Accept(ctx context.Context, userID, inviteID uuid.UUID) error {
	invite, err := s.inviteFor(ctx, userID, inviteID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Member{}).
			Where("organization_id = ? AND user_id = ?", invite.OrganizationID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Create(&models.Member{
				OrganizationID: invite.OrganizationID,
				UserID:         userID,
				Role:           invite.Role,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Invite{}, "id = ?", invite.ID).Error
	})
}

func (s *Service) Reject(ctx context.Context, userID, inviteID uuid.UUID) error {
	invite, err := s.inviteFor(ctx, userID, inviteID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.Invite{}, "id = ?", invite.ID).Error
}

// PendingForUser lists the invites addressed to the user's email.
func (s *Service) PendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Invite, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadRequest("User not found.")
	}
	if err != nil {
		return nil, err
	}

	var invites []models.Invite
	err = s.db.WithContext(ctx).
		Preload("Organization").
		Preload("Author").
		Where("email = ?", strings.ToLower(user.Email)).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}
