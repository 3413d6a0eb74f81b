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

// Membership is the caller's view of an organization: the organization and
// the member row holding the caller's role.
type Membership struct {
	Organization models.Organization
	Member       models.Member
}

func (m *Membership) Ability() *permissions.Ability {
	return permissions.For(m.Member.UserID, m.Member.Role)
}

// IsOwner reports whether the member owns the organization.
func (m *Membership) IsOwner() bool {
	return m.Organization.OwnerID == m.Member.UserID
}

// ResolveMembership loads the organization with the given slug together with
// userID's membership. Unknown slugs and non-members get the same error.
func ResolveMembership(ctx context.Context, db *gorm.DB, userID uuid.UUID, slug string) (*Membership, error) {
	notMember := apperr.Unauthorized("You're not a member of this organization.")

	var org models.Organization
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notMember
	}
	if err != nil {
		return nil, err
	}

	var member models.Member
	err = db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", org.ID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notMember
	}
	if err != nil {
		return nil, err
	}

	return &Membership{Organization: org, Member: member}, nil
}
