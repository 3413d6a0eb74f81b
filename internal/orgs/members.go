package orgs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
	"gorm.io/gorm"
)

func (s *Service) ListMembers(ctx context.Context, userID uuid.UUID, slug string) ([]models.Member, error) {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionGet, permissions.SubjectUser) {
		return nil, apperr.Unauthorized("You're not allowed to see organization members.")
	}

	var members []models.Member
	err = s.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", m.Organization.ID).
		Order("role ASC, created_at ASC").
		Find(&members).Error
	return members, err
}

func (s *Service) findMember(ctx context.Context, orgID, memberID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", memberID, orgID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadRequest("Member not found.")
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a member's role. The owner always stays ADMIN.
func (s *Service) UpdateMemberRole(ctx context.Context, userID uuid.UUID, slug string, memberID uuid.UUID, role permissions.Role) error {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionUpdate, permissions.SubjectUser) {
		return apperr.Unauthorized("You're not allowed to update this member.")
	}
	if !role.Valid() {
		return apperr.BadRequest("Invalid role.")
	}

	member, err := s.findMember(ctx, m.Organization.ID, memberID)
	if err != nil {
		return err
	}
	if member.UserID == m.Organization.OwnerID && role != permissions.RoleAdmin {
		return apperr.BadRequest("The organization owner must remain an admin.")
	}

	return s.db.WithContext(ctx).Model(&models.Member{}).
		Where("id = ?", member.ID).
		Update("role", role).Error
}

func (s *Service) RemoveMember(ctx context.Context, userID uuid.UUID, slug string, memberID uuid.UUID) error {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return err
	}
	if m.Ability().Cannot(permissions.ActionDelete, permissions.SubjectUser) {
		return apperr.Unauthorized("You're not allowed to remove this member from organization.")
	}

	member, err := s.findMember(ctx, m.Organization.ID, memberID)
	if err != nil {
		return err
	}
	if member.UserID == m.Organization.OwnerID {
		return apperr.BadRequest("The organization owner cannot be removed.")
	}

	return s.db.WithContext(ctx).Delete(&models.Member{}, "id = ?", member.ID).Error
}
