package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
)

type UserService struct {
	Store store.Store
	Plans domain.Plans
	Now   Clock
}

// Profile is the caller as shown by GET /me.
type Profile struct {
	User          domain.User
	Plan          domain.Plan
	Organizations []domain.Membership
	SuperAdmin    bool
}

// Ensure records a provider user on first sight.
func (s *UserService) Ensure(ctx context.Context, id, email string) error {
	if err := s.Store.Users().Ensure(ctx, id, email, s.Now.now()); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func (s *UserService) Profile(ctx context.Context, t domain.Tenant) (Profile, error) {
	u, err := s.Store.Users().Get(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	orgs, err := s.Store.Organizations().ListForUser(ctx, t.UserID)
	if err != nil {
		return Profile{}, err
	}
	admin, err := s.Store.Users().IsSuperAdmin(ctx, t.UserID)
	if err != nil {
		return Profile{}, err
	}

	plans := s.Plans
	if plans == nil {
		plans = domain.DefaultPlans()
	}
	return Profile{
		User:          u,
		Plan:          plans.Lookup(u.Plan),
		Organizations: orgs,
		SuperAdmin:    admin,
	}, nil
}

// SetPlan moves a user to another tier. Billing lives outside this service,
// so this is only reachable from the operator CLI.
func (s *UserService) SetPlan(ctx context.Context, id, plan string) error {
	plans := s.Plans
	if plans == nil {
		plans = domain.DefaultPlans()
	}
	if _, ok := plans[plan]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	if err := s.Store.Users().SetPlan(ctx, id, plan, s.Now.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

// GrantSuperAdmin lets a user curate cancellation guides.
func (s *UserService) GrantSuperAdmin(ctx context.Context, id string) error {
	if _, err := s.Store.Users().Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Store.Users().GrantSuperAdmin(ctx, id, s.Now.now()); err != nil {
		return fmt.Errorf("grant super admin: %w", err)
	}
	return nil
}
