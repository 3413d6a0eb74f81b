package orgs

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
)

// Monthly prices per billable unit.
const (
	SeatPrice    = 10
	ProjectPrice = 20
)

type BillingLine struct {
	Amount int64 `json:"amount"`
	Unit   int64 `json:"unit"`
	Price  int64 `json:"price"`
}

type Billing struct {
	Seats    BillingLine `json:"seats"`
	Projects BillingLine `json:"projects"`
	Total    int64       `json:"total"`
}

// GetBilling prices the organization. BILLING members are not seats.
func (s *Service) GetBilling(ctx context.Context, userID uuid.UUID, slug string) (*Billing, error) {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return nil, err
	}
	if m.Ability().Cannot(permissions.ActionGet, permissions.SubjectBilling) {
		return nil, apperr.Unauthorized("You're not allowed to get billing details from this organization.")
	}

	var seats, projects int64
	if err := s.db.WithContext(ctx).Model(&models.Member{}).
		Where("organization_id = ? AND role <> ?", m.Organization.ID, permissions.RoleBilling).
		Count(&seats).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("organization_id = ?", m.Organization.ID).
		Count(&projects).Error; err != nil {
		return nil, err
	}

	b := &Billing{
		Seats:    BillingLine{Amount: seats, Unit: SeatPrice, Price: seats * SeatPrice},
		Projects: BillingLine{Amount: projects, Unit: ProjectPrice, Price: projects * ProjectPrice},
	}
	b.Total = b.Seats.Price + b.Projects.Price
	return b, nil
}
