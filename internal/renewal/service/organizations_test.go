package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganizationRequiresFeature(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := &OrganizationService{Store: s, Plans: domain.DefaultPlans(), Now: newClock(testNow).Now}
	user := newUser(t, s, "founder@example.com")

	_, err := svc.Create(ctx, personal(user), "Acme")
	require.ErrorIs(t, err, ErrFeatureUnavailable)

	require.NoError(t, s.Users().SetPlan(ctx, user, domain.PlanPro, testNow))
	_, err = svc.Create(ctx, personal(user), "   ")
	require.ErrorIs(t, err, ErrInvalidOrganization)

	m, err := svc.Create(ctx, personal(user), "Acme")
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, m.Role)

	mine, err := svc.List(ctx, personal(user))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, m.Organization.ID, mine[0].Organization.ID)

	members, err := svc.Members(ctx, personal(user), m.Organization.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "founder@example.com", members[0].Email)
}

func TestResolveTenant(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := &OrganizationService{Store: s}
	owner := newUser(t, s, "owner@example.com")
	org := newOrganization(t, s, owner)
	stranger := newUser(t, s, "stranger@example.com")

	tenant, err := svc.ResolveTenant(ctx, owner, "owner@example.com", "")
	require.NoError(t, err)
	require.False(t, tenant.InOrganization())

	tenant, err = svc.ResolveTenant(ctx, owner, "owner@example.com", org.OrganizationID)
	require.NoError(t, err)
	require.True(t, tenant.IsAdmin())

	_, err = svc.ResolveTenant(ctx, stranger, "stranger@example.com", org.OrganizationID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Members(ctx, personal(stranger), org.OrganizationID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestProfileAndGuides(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	users := &UserService{Store: s, Now: newClock(testNow).Now}
	guides := &GuideService{Store: s, Now: newClock(testNow).Now}

	id := "6f1c2a4e-8a8b-4c1e-9d55-0e4f6b1a2c3d"
	require.NoError(t, users.Ensure(ctx, id, "me@example.com"))
	require.NoError(t, users.Ensure(ctx, id, "me@example.com"))

	p, err := users.Profile(ctx, personal(id))
	require.NoError(t, err)
	require.Equal(t, "me@example.com", p.User.Email)
	require.Equal(t, domain.PlanFree, p.Plan.Name)
	require.False(t, p.SuperAdmin)
	require.True(t, p.User.TotalSavedKRW.IsZero())

	_, err = users.Profile(ctx, personal("00000000-0000-0000-0000-000000000000"))
	require.ErrorIs(t, err, ErrUserNotFound)

	guide := domain.CancellationGuide{Slug: "netflix", ServiceName: "Netflix", URL: "https://www.netflix.com/cancelplan", Steps: []string{"Account", "Cancel"}}
	_, err = guides.Upsert(ctx, personal(id), guide)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, s.Users().GrantSuperAdmin(ctx, id, testNow))
	_, err = guides.Upsert(ctx, personal(id), domain.CancellationGuide{Slug: "Bad Slug", ServiceName: "x"})
	require.ErrorIs(t, err, ErrInvalidGuide)
	_, err = guides.Upsert(ctx, personal(id), domain.CancellationGuide{Slug: "x", ServiceName: "x", URL: "ftp://x"})
	require.ErrorIs(t, err, ErrInvalidGuide)

	_, err = guides.Upsert(ctx, personal(id), guide)
	require.NoError(t, err)

	got, err := guides.Get(ctx, "netflix")
	require.NoError(t, err)
	require.Equal(t, []string{"Account", "Cancel"}, got.Steps)

	_, err = guides.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrGuideNotFound)

	list, err := guides.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestOperatorUserCommands(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	users := &UserService{Store: s, Plans: domain.DefaultPlans(), Now: newClock(testNow).Now}

	id := "0b7c4f52-3f0e-4f4e-9a59-6f6c9a1f2e11"
	missing := "00000000-0000-0000-0000-000000000000"
	require.NoError(t, users.Ensure(ctx, id, "ops@example.com"))

	require.ErrorIs(t, users.SetPlan(ctx, id, "platinum"), ErrUnknownPlan)
	require.ErrorIs(t, users.SetPlan(ctx, missing, domain.PlanPro), ErrUserNotFound)
	require.NoError(t, users.SetPlan(ctx, id, domain.PlanPro))

	require.ErrorIs(t, users.GrantSuperAdmin(ctx, missing), ErrUserNotFound)
	require.NoError(t, users.GrantSuperAdmin(ctx, id))
	require.NoError(t, users.GrantSuperAdmin(ctx, id))

	p, err := users.Profile(ctx, personal(id))
	require.NoError(t, err)
	require.Equal(t, domain.PlanPro, p.Plan.Name)
	require.True(t, p.SuperAdmin)
}
