package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/idx"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

const maxOrganizationName = 100

type OrganizationService struct {
	Store store.Store
	Plans domain.Plans
	Now   Clock
}

// Create opens a new organization owned by the caller.
func (s *OrganizationService) Create(ctx context.Context, t domain.Tenant, name string) (domain.Membership, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxOrganizationName {
		return domain.Membership{}, invalid(ErrInvalidOrganization, "name must be 1 to 100 characters")
	}

	plan, err := lookupPlan(ctx, s.Store, s.Plans, t.UserID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !plan.Has(domain.FeatureOrganizations) {
		return domain.Membership{}, ErrFeatureUnavailable
	}

	now := s.Now.now()
	org := domain.Organization{
		ID:        idx.NewString(),
		Name:      name,
		OwnerID:   t.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().Create(ctx, org); err != nil {
			return err
		}
		return tx.Organizations().AddMember(ctx, domain.Member{
			OrganizationID: org.ID,
			UserID:         t.UserID,
			Role:           domain.RoleOwner,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return domain.Membership{}, err
	}

	slogx.FromContext(ctx).Info("organization created", slog.String("organization_id", org.ID))
	return domain.Membership{Organization: org, Role: domain.RoleOwner}, nil
}

func (s *OrganizationService) List(ctx context.Context, t domain.Tenant) ([]domain.Membership, error) {
	return s.Store.Organizations().ListForUser(ctx, t.UserID)
}

// Members lists an organization the caller belongs to.
func (s *OrganizationService) Members(ctx context.Context, t domain.Tenant, orgID string) ([]domain.Member, error) {
	if _, err := s.member(ctx, orgID, t.UserID); err != nil {
		return nil, err
	}
	return s.Store.Organizations().ListMembers(ctx, orgID)
}

// ResolveTenant builds the caller's tenant. An empty orgID means the caller
// acts personally; otherwise the caller must be a member.
func (s *OrganizationService) ResolveTenant(ctx context.Context, userID, email, orgID string) (domain.Tenant, error) {
	t := domain.Tenant{UserID: userID, Email: email}
	if orgID == "" {
		return t, nil
	}
	m, err := s.member(ctx, orgID, userID)
	if err != nil {
		return domain.Tenant{}, err
	}
	t.OrganizationID = orgID
	t.Role = m.Role
	return t, nil
}

func (s *OrganizationService) member(ctx context.Context, orgID, userID string) (domain.Member, error) {
	m, err := s.Store.Organizations().GetMember(ctx, orgID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Member{}, ErrForbidden
	}
	return m, err
}
