// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/idx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Factory returns a freshly migrated, empty store.
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Contracts", func(t *testing.T) { testContracts(t, newStore(t)) })
	t.Run("ContractOwnership", func(t *testing.T) { testOwnership(t, newStore(t)) })
	t.Run("Organizations", func(t *testing.T) { testOrganizations(t, newStore(t)) })
	t.Run("Invitations", func(t *testing.T) { testInvitations(t, newStore(t)) })
	t.Run("NotificationLogs", func(t *testing.T) { testNotificationLogs(t, newStore(t)) })
	t.Run("Guides", func(t *testing.T) { testGuides(t, newStore(t)) })
	t.Run("WithTx", func(t *testing.T) { testWithTx(t, newStore(t)) })
}

var base = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// NewUser inserts a user with a fresh provider uuid.
func NewUser(t *testing.T, s store.Store, email string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, s.Users().Ensure(context.Background(), id, email, base))
	return id
}

// NewContract builds an active monthly KRW contract for userID.
func NewContract(userID, name string, expires time.Time) domain.Contract {
	return domain.Contract{
		ID:         idx.NewString(),
		UserID:     userID,
		Name:       name,
		Amount:     dec("10000"),
		Currency:   domain.CurrencyKRW,
		Cycle:      domain.CycleMonthly,
		ExpiresAt:  expires,
		NoticeDays: 7,
		Status:     domain.StatusActive,
		CreatedAt:  base,
		UpdatedAt:  base,
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	id := NewUser(t, s, "a@example.com")

	require.NoError(t, s.Users().Ensure(ctx, id, "changed@example.com", base.Add(time.Hour)))
	u, err := s.Users().Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "changed@example.com", u.Email)
	require.Equal(t, domain.PlanFree, u.Plan)
	require.True(t, u.TotalSavedKRW.IsZero())

	require.NoError(t, s.Users().Ensure(ctx, id, "", base.Add(2*time.Hour)))
	u, err = s.Users().Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "changed@example.com", u.Email)

	require.NoError(t, s.Users().SetPlan(ctx, id, domain.PlanPro, base))
	u, err = s.Users().Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.PlanPro, u.Plan)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Users().IncrementSavedKRW(ctx, id, dec("1400"), base)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	u, err = s.Users().Get(ctx, id)
	require.NoError(t, err)
	require.True(t, dec("14000").Equal(u.TotalSavedKRW), u.TotalSavedKRW.String())

	frac := NewUser(t, s, "frac@example.com")
	for _, amt := range []string{"0.1", "0.2", "1000000000000.01"} {
		require.NoError(t, s.Users().IncrementSavedKRW(ctx, frac, dec(amt), base))
	}
	u, err = s.Users().Get(ctx, frac)
	require.NoError(t, err)
	require.Equal(t, "1000000000000.31", u.TotalSavedKRW.String())

	fresh := uuid.NewString()
	require.NoError(t, s.Users().IncrementSavedKRW(ctx, fresh, dec("0.3"), base))
	u, err = s.Users().Get(ctx, fresh)
	require.NoError(t, err)
	require.Equal(t, "0.3", u.TotalSavedKRW.String())

	_, err = s.Users().Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Lock(ctx, id); err != nil {
			return err
		}
		return tx.Users().Lock(ctx, uuid.NewString())
	}))
	u, err = s.Users().Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.PlanPro, u.Plan)

	ok, err := s.Users().IsSuperAdmin(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Users().GrantSuperAdmin(ctx, id, base))
	require.NoError(t, s.Users().GrantSuperAdmin(ctx, id, base))
	ok, err = s.Users().IsSuperAdmin(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
}

func testContracts(t *testing.T, s store.Store) {
	ctx := context.Background()
	caps, err := s.Capabilities(ctx)
	require.NoError(t, err)
	require.True(t, caps.Decisions)

	userID := NewUser(t, s, "owner@example.com")
	expires := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	c := NewContract(userID, "Netflix", expires)
	c.Amount = dec("17.99")
	c.Currency = domain.CurrencyUSD
	c.Memo = "family plan"
	c.AutoRenew = true
	require.NoError(t, s.Contracts().Create(ctx, c))

	got, err := s.Contracts().Get(ctx, c.ID, userID)
	require.NoError(t, err)
	require.Equal(t, "Netflix", got.Name)
	require.Equal(t, "family plan", got.Memo)
	require.True(t, dec("17.99").Equal(got.Amount), got.Amount.String())
	require.Equal(t, domain.CurrencyUSD, got.Currency)
	require.Equal(t, "2026-06-15", domain.FormatDate(got.ExpiresAt))
	require.True(t, got.AutoRenew)
	require.Equal(t, domain.StatusActive, got.Status)
	require.Equal(t, domain.DecisionNone, got.Decision)
	require.False(t, got.SavedAmount.Valid)
	require.Empty(t, got.OrganizationID)

	got.Name = "Netflix Premium"
	got.NoticeDays = 14
	got.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.Contracts().Update(ctx, got))

	n, err := s.Contracts().CountActive(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// keep, then renew clears the decision
	require.NoError(t, s.Contracts().Keep(ctx, c.ID, userID, base))
	undecided, err := s.Contracts().ListActive(ctx, userID, true)
	require.NoError(t, err)
	require.Empty(t, undecided)

	kept, err := s.Contracts().Get(ctx, c.ID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.DecisionKept, kept.Decision)
	require.NotNil(t, kept.DecisionDate)

	next := expires.AddDate(0, 1, 0)
	require.NoError(t, s.Contracts().Renew(ctx, c.ID, userID, next, true, base))
	renewed, err := s.Contracts().Get(ctx, c.ID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, renewed.Status)
	require.Equal(t, domain.DecisionNone, renewed.Decision)
	require.Nil(t, renewed.DecisionDate)
	require.Equal(t, "2026-07-15", domain.FormatDate(renewed.ExpiresAt))
	require.Equal(t, "Netflix Premium", renewed.Name)
	require.Equal(t, 14, renewed.NoticeDays)

	expiring, err := s.Contracts().ListExpiringOn(ctx, next)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	require.Equal(t, c.ID, expiring[0].ID)

	require.NoError(t, s.Contracts().Terminate(ctx, c.ID, userID, dec("1000"), true, base))
	term, err := s.Contracts().Get(ctx, c.ID, userID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusTerminated, term.Status)
	require.Equal(t, domain.DecisionTerminated, term.Decision)
	require.True(t, term.SavedAmount.Valid)
	require.True(t, dec("1000").Equal(term.SavedAmount.Decimal))
	require.ErrorIs(t, s.Contracts().Terminate(ctx, c.ID, userID, dec("5"), true, base), store.ErrNotFound)

	expiring, err = s.Contracts().ListExpiringOn(ctx, next)
	require.NoError(t, err)
	require.Empty(t, expiring)

	other := NewContract(userID, "Gym", expires)
	require.NoError(t, s.Contracts().Create(ctx, other))
	require.NoError(t, s.Contracts().MarkRenewed(ctx, other.ID, userID, base))

	terminated, err := s.Contracts().List(ctx, userID, domain.ContractFilter{Status: domain.StatusTerminated})
	require.NoError(t, err)
	require.Len(t, terminated, 1)

	all, err := s.Contracts().List(ctx, userID, domain.ContractFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, other.ID, all[0].ID) // earlier expiry first

	active, err := s.Contracts().ListActive(ctx, userID, false)
	require.NoError(t, err)
	require.Empty(t, active)

	require.NoError(t, s.NotificationLogs().Insert(ctx, domain.NotificationLog{
		ID: idx.NewString(), ContractID: c.ID, Type: "d30", SentAt: base,
	}))
	require.NoError(t, s.Contracts().Delete(ctx, c.ID, userID))
	_, err = s.Contracts().Get(ctx, c.ID, userID)
	require.ErrorIs(t, err, store.ErrNotFound)

	logs, err := s.NotificationLogs().ListForContract(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, logs)
}

func testOwnership(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := NewUser(t, s, "owner@example.com")
	intruder := NewUser(t, s, "intruder@example.com")

	c := NewContract(owner, "Lease", base)
	require.NoError(t, s.Contracts().Create(ctx, c))

	_, err := s.Contracts().Get(ctx, c.ID, intruder)
	require.ErrorIs(t, err, store.ErrNotFound)

	for name, op := range map[string]func() error{
		"renew":     func() error { return s.Contracts().Renew(ctx, c.ID, intruder, base, true, base) },
		"terminate": func() error { return s.Contracts().Terminate(ctx, c.ID, intruder, dec("1"), true, base) },
		"keep":      func() error { return s.Contracts().Keep(ctx, c.ID, intruder, base) },
		"renewed":   func() error { return s.Contracts().MarkRenewed(ctx, c.ID, intruder, base) },
		"delete":    func() error { return s.Contracts().Delete(ctx, c.ID, intruder) },
		"update": func() error {
			cc := c
			cc.UserID = intruder
			return s.Contracts().Update(ctx, cc)
		},
	} {
		require.ErrorIs(t, op(), store.ErrNotFound, name)
	}

	got, err := s.Contracts().Get(ctx, c.ID, owner)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, got.Status)
}

func testOrganizations(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := NewUser(t, s, "owner@example.com")
	member := NewUser(t, s, "Member@Example.com")

	org := domain.Organization{ID: idx.NewString(), Name: "Acme", OwnerID: owner, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Organizations().Create(ctx, org))
	require.NoError(t, s.Organizations().AddMember(ctx, domain.Member{OrganizationID: org.ID, UserID: owner, Role: domain.RoleOwner, CreatedAt: base}))
	require.NoError(t, s.Organizations().AddMember(ctx, domain.Member{OrganizationID: org.ID, UserID: member, Role: domain.RoleMember, CreatedAt: base.Add(time.Second)}))

	err := s.Organizations().AddMember(ctx, domain.Member{OrganizationID: org.ID, UserID: member, Role: domain.RoleAdmin, CreatedAt: base})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	m, err := s.Organizations().GetMember(ctx, org.ID, member)
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, m.Role)
	require.Equal(t, "Member@Example.com", m.Email)

	members, err := s.Organizations().ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, owner, members[0].UserID)

	ok, err := s.Organizations().HasMemberWithEmail(ctx, org.ID, "member@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	mine, err := s.Organizations().ListForUser(ctx, member)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Acme", mine[0].Organization.Name)
	require.Equal(t, domain.RoleMember, mine[0].Role)

	_, err = s.Organizations().GetMember(ctx, org.ID, uuid.NewString())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testInvitations(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := NewUser(t, s, "owner@example.com")
	org := domain.Organization{ID: idx.NewString(), Name: "Acme", OwnerID: owner, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Organizations().Create(ctx, org))

	inv := domain.Invitation{
		ID:             idx.NewString(),
		OrganizationID: org.ID,
		Email:          "new@example.com",
		Role:           domain.RoleMember,
		TokenHash:      "hash-1",
		InvitedBy:      owner,
		ExpiresAt:      base.Add(domain.InvitationTTL),
		CreatedAt:      base,
	}
	require.NoError(t, s.Invitations().Create(ctx, inv))

	dup := inv
	dup.ID = idx.NewString()
	require.ErrorIs(t, s.Invitations().Create(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Invitations().GetByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Nil(t, got.AcceptedAt)
	require.True(t, inv.ExpiresAt.Equal(got.ExpiresAt))

	pending, err := s.Invitations().HasPending(ctx, org.ID, "NEW@example.com", base.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, pending)

	pending, err = s.Invitations().HasPending(ctx, org.ID, "new@example.com", base.Add(8*24*time.Hour))
	require.NoError(t, err)
	require.False(t, pending)

	list, err := s.Invitations().ListPending(ctx, org.ID, base)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Invitations().MarkAccepted(ctx, inv.ID, owner, base.Add(time.Hour)))
	require.ErrorIs(t, s.Invitations().MarkAccepted(ctx, inv.ID, owner, base.Add(2*time.Hour)), store.ErrNotFound)

	got, err = s.Invitations().Get(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AcceptedAt)
	require.Equal(t, owner, got.AcceptedBy)

	fresh := inv
	fresh.ID = idx.NewString()
	fresh.TokenHash = "hash-2"
	fresh.CreatedAt = base.Add(24 * time.Hour)
	fresh.ExpiresAt = fresh.CreatedAt.Add(domain.InvitationTTL)
	require.NoError(t, s.Invitations().Create(ctx, fresh))

	n, err := s.Invitations().DeleteStale(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Invitations().Get(ctx, inv.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Invitations().Delete(ctx, fresh.ID))
	require.ErrorIs(t, s.Invitations().Delete(ctx, fresh.ID), store.ErrNotFound)
}

func testNotificationLogs(t *testing.T, s store.Store) {
	ctx := context.Background()
	userID := NewUser(t, s, "u@example.com")
	c := NewContract(userID, "Insurance", base)
	require.NoError(t, s.Contracts().Create(ctx, c))

	ok, err := s.NotificationLogs().Exists(ctx, c.ID, "d7")
	require.NoError(t, err)
	require.False(t, ok)

	entry := domain.NotificationLog{ID: idx.NewString(), ContractID: c.ID, Type: "d7", SentAt: base}
	require.NoError(t, s.NotificationLogs().Insert(ctx, entry))

	entry.ID = idx.NewString()
	err = s.NotificationLogs().Insert(ctx, entry)
	require.True(t, errors.Is(err, store.ErrAlreadyExists), "got %v", err)

	ok, err = s.NotificationLogs().Exists(ctx, c.ID, "d7")
	require.NoError(t, err)
	require.True(t, ok)
}

func testGuides(t *testing.T, s store.Store) {
	ctx := context.Background()

	g := domain.CancellationGuide{
		Slug:        "netflix",
		ServiceName: "Netflix",
		URL:         "https://www.netflix.com/cancelplan",
		Steps:       []string{"Open account", "Cancel membership"},
		UpdatedAt:   base,
	}
	require.NoError(t, s.Guides().Upsert(ctx, g))

	g.Notes = "Access ends at the billing date."
	g.Steps = append(g.Steps, "Confirm")
	require.NoError(t, s.Guides().Upsert(ctx, g))

	got, err := s.Guides().Get(ctx, "netflix")
	require.NoError(t, err)
	require.Equal(t, []string{"Open account", "Cancel membership", "Confirm"}, got.Steps)
	require.Equal(t, "Access ends at the billing date.", got.Notes)

	list, err := s.Guides().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = s.Guides().Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testWithTx(t *testing.T, s store.Store) {
	ctx := context.Background()
	userID := NewUser(t, s, "tx@example.com")
	c := NewContract(userID, "Rolled back", base)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Contracts().Create(ctx, c))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Contracts().Get(ctx, c.ID, userID)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.Error(t, err)
		return tx.Contracts().Create(ctx, c)
	})
	require.NoError(t, err)

	_, err = s.Contracts().Get(ctx, c.ID, userID)
	require.NoError(t, err)
}
