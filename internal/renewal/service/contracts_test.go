package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/drivers/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newContractService(t *testing.T, s store.Store) *ContractService {
	t.Helper()
	return &ContractService{
		Store:    s,
		Rates:    staticRate(dec("1400")),
		Plans:    domain.DefaultPlans(),
		Schema:   schemaOf(t, s),
		Location: seoul,
		Now:      newClock(testNow).Now,
	}
}

func input(name string, amount string, currency domain.Currency) ContractInput {
	return ContractInput{
		Name:       name,
		Amount:     dec(amount),
		Currency:   currency,
		Cycle:      domain.CycleMonthly,
		ExpiresAt:  domain.AddDays(today(), 30),
		NoticeDays: 7,
	}
}

func TestCreateContract(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "a@example.com")

	t.Run("stamps owner and status", func(t *testing.T) {
		c, err := svc.Create(ctx, personal(user), input("  Netflix ", "17000", "krw"))
		require.NoError(t, err)
		require.Equal(t, "Netflix", c.Name)
		require.Equal(t, domain.CurrencyKRW, c.Currency)
		require.Equal(t, domain.StatusActive, c.Status)
		require.Equal(t, user, c.UserID)

		got, err := svc.Get(ctx, personal(user), c.ID)
		require.NoError(t, err)
		require.Equal(t, c.ID, got.ID)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		in := input("", "-1", "EUR")
		_, err := svc.Create(ctx, personal(user), in)
		require.ErrorIs(t, err, ErrInvalidContract)
		require.Contains(t, err.Error(), "name is required")
		require.Contains(t, err.Error(), "currency")
	})

	t.Run("stamps organization", func(t *testing.T) {
		tenant := newOrganization(t, s, user)
		c, err := svc.Create(ctx, tenant, input("Slack", "8", domain.CurrencyUSD))
		require.NoError(t, err)
		require.Equal(t, tenant.OrganizationID, c.OrganizationID)
	})
}

func TestCreateContractPlanLimit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "limit@example.com")

	for i := range 5 {
		_, err := svc.Create(ctx, personal(user), input("c"+string(rune('a'+i)), "1000", domain.CurrencyKRW))
		require.NoError(t, err)
	}

	_, err := svc.Create(ctx, personal(user), input("sixth", "1000", domain.CurrencyKRW))
	require.ErrorIs(t, err, ErrPlanLimitExceeded)
	var limit *PlanLimitError
	require.True(t, errors.As(err, &limit))
	require.Equal(t, 5, limit.Limit)
	require.Equal(t, "the free plan allows up to 5 active contracts", err.Error())

	require.NoError(t, s.Users().SetPlan(ctx, user, domain.PlanPro, testNow))
	_, err = svc.Create(ctx, personal(user), input("sixth", "1000", domain.CurrencyKRW))
	require.NoError(t, err)
}

func TestConcurrentCreatesRespectPlanLimit(t *testing.T) {
	ctx := context.Background()
	s, err := sqlite.NewStore(t.TempDir() + "/renewal.db")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	svc := newContractService(t, s)
	user := newUser(t, s, "race@example.com")

	var wg sync.WaitGroup
	errs := make(chan error, 12)
	for i := range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, personal(user), input("c"+string(rune('a'+i)), "1000", domain.CurrencyKRW))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, ErrPlanLimitExceeded)
	}
	require.Equal(t, 5, created)

	n, err := s.Contracts().CountActive(ctx, user)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestTerminateAccumulatesSavingsInKRW(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "saver@example.com")

	c, err := svc.Create(ctx, personal(user), input("AWS", "120", domain.CurrencyUSD))
	require.NoError(t, err)

	saved := dec("1000")
	res, err := svc.Terminate(ctx, personal(user), c.ID, &saved)
	require.NoError(t, err)
	require.True(t, res.AccumulatorUpdated)
	require.True(t, dec("1400000").Equal(res.SavedKRW), res.SavedKRW.String())
	require.NotNil(t, res.Rate)
	require.Equal(t, domain.StatusTerminated, res.Contract.Status)
	require.Equal(t, domain.DecisionTerminated, res.Contract.Decision)

	u, err := s.Users().Get(ctx, user)
	require.NoError(t, err)
	require.True(t, dec("1400000").Equal(u.TotalSavedKRW), u.TotalSavedKRW.String())

	t.Run("second termination is rejected", func(t *testing.T) {
		_, err := svc.Terminate(ctx, personal(user), c.ID, &saved)
		require.ErrorIs(t, err, ErrInvalidTransition)

		u, err := s.Users().Get(ctx, user)
		require.NoError(t, err)
		require.True(t, dec("1400000").Equal(u.TotalSavedKRW))
	})

	t.Run("keep is rejected", func(t *testing.T) {
		_, err := svc.Keep(ctx, personal(user), c.ID)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestTerminateFractionalSavingsStayExact(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "fraction@example.com")

	for _, amt := range []string{"0.1", "0.2"} {
		c, err := svc.Create(ctx, personal(user), input("svc "+amt, "1000", domain.CurrencyKRW))
		require.NoError(t, err)
		saved := dec(amt)
		_, err = svc.Terminate(ctx, personal(user), c.ID, &saved)
		require.NoError(t, err)
	}

	u, err := s.Users().Get(ctx, user)
	require.NoError(t, err)
	require.Equal(t, "0.3", u.TotalSavedKRW.String())
}

func TestTerminateValidation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "v@example.com")
	c, err := svc.Create(ctx, personal(user), input("Gym", "50000", domain.CurrencyKRW))
	require.NoError(t, err)

	_, err = svc.Terminate(ctx, personal(user), c.ID, nil)
	require.ErrorIs(t, err, ErrInvalidContract)

	negative := dec("-1")
	_, err = svc.Terminate(ctx, personal(user), c.ID, &negative)
	require.ErrorIs(t, err, ErrInvalidContract)

	zero := decimal.Zero
	res, err := svc.Terminate(ctx, personal(user), c.ID, &zero)
	require.NoError(t, err)
	require.Nil(t, res.Rate)
	require.False(t, res.Contract.HasSavings())
}

func TestKeepAndRenew(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "k@example.com")
	c, err := svc.Create(ctx, personal(user), input("Phone", "55000", domain.CurrencyKRW))
	require.NoError(t, err)

	kept, err := svc.Keep(ctx, personal(user), c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, kept.Status)
	require.Equal(t, domain.DecisionKept, kept.Decision)
	require.NotNil(t, kept.DecisionDate)

	_, err = svc.Keep(ctx, personal(user), c.ID)
	require.NoError(t, err)

	next := domain.AddDays(c.ExpiresAt, 365)
	renewed, err := svc.Renew(ctx, personal(user), c.ID, next)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, renewed.Status)
	require.Equal(t, domain.DecisionNone, renewed.Decision)
	require.Nil(t, renewed.DecisionDate)
	require.Equal(t, domain.FormatDate(next), domain.FormatDate(renewed.ExpiresAt))

	_, err = svc.Renew(ctx, personal(user), c.ID, domain.AddDays(today(), -10))
	require.NoError(t, err, "past dates are accepted")

	_, err = svc.Renew(ctx, personal(user), c.ID, time.Time{})
	require.ErrorIs(t, err, ErrInvalidContract)

	_, err = svc.Renew(ctx, personal(user), "missing", next)
	require.ErrorIs(t, err, ErrContractNotFound)
}

func TestRenewReactivatesTerminatedContract(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "r@example.com")
	c, err := svc.Create(ctx, personal(user), input("Cloud", "30000", domain.CurrencyKRW))
	require.NoError(t, err)

	saved := dec("30000")
	_, err = svc.Terminate(ctx, personal(user), c.ID, &saved)
	require.NoError(t, err)

	got, err := svc.Renew(ctx, personal(user), c.ID, domain.AddDays(today(), 90))
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, got.Status)
	require.True(t, got.HasSavings())
}

func TestLegacySchemaKeepMarksRenewed(t *testing.T) {
	ctx := context.Background()
	s := newLegacyStore(t)
	svc := newContractService(t, s)
	require.False(t, svc.Schema.Decisions())
	user := newUser(t, s, "legacy@example.com")

	c, err := svc.Create(ctx, personal(user), input("Phone", "55000", domain.CurrencyKRW))
	require.NoError(t, err)

	kept, err := svc.Keep(ctx, personal(user), c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRenewed, kept.Status)
	require.Equal(t, domain.DecisionNone, kept.Decision)

	renewed, err := svc.Renew(ctx, personal(user), c.ID, domain.AddDays(c.ExpiresAt, 30))
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, renewed.Status)
}

func TestDecisionColumnsDowngradeOnUnknownColumn(t *testing.T) {
	ctx := context.Background()
	s := newLegacyStore(t)
	svc := newContractService(t, s)
	svc.Schema = NewSchemaFlags(store.Capabilities{Decisions: true})
	user := newUser(t, s, "drift@example.com")

	c, err := svc.Create(ctx, personal(user), input("Phone", "55000", domain.CurrencyKRW))
	require.NoError(t, err)

	kept, err := svc.Keep(ctx, personal(user), c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRenewed, kept.Status)
	require.False(t, svc.Schema.Decisions())
}

func TestDeleteRequiresConfirmationForSavings(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "d@example.com")

	plain, err := svc.Create(ctx, personal(user), input("Plain", "1000", domain.CurrencyKRW))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, personal(user), plain.ID, false))
	_, err = svc.Get(ctx, personal(user), plain.ID)
	require.ErrorIs(t, err, ErrContractNotFound)

	c, err := svc.Create(ctx, personal(user), input("Saved", "1000", domain.CurrencyKRW))
	require.NoError(t, err)
	saved := dec("1000")
	_, err = svc.Terminate(ctx, personal(user), c.ID, &saved)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, personal(user), c.ID, false), ErrConfirmationRequired)
	require.NoError(t, svc.Delete(ctx, personal(user), c.ID, true))
}

func TestContractsAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	owner := newUser(t, s, "owner@example.com")
	intruder := newUser(t, s, "intruder@example.com")

	c, err := svc.Create(ctx, personal(owner), input("Private", "1000", domain.CurrencyKRW))
	require.NoError(t, err)

	_, err = svc.Get(ctx, personal(intruder), c.ID)
	require.ErrorIs(t, err, ErrContractNotFound)
	_, err = svc.Update(ctx, personal(intruder), c.ID, input("Mine", "1", domain.CurrencyKRW))
	require.ErrorIs(t, err, ErrContractNotFound)
	_, err = svc.Keep(ctx, personal(intruder), c.ID)
	require.ErrorIs(t, err, ErrContractNotFound)
	require.ErrorIs(t, svc.Delete(ctx, personal(intruder), c.ID, true), ErrContractNotFound)

	list, err := svc.List(ctx, personal(intruder), domain.ContractFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestUpdateContract(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	svc := newContractService(t, s)
	user := newUser(t, s, "u@example.com")
	c, err := svc.Create(ctx, personal(user), input("Old", "1000", domain.CurrencyKRW))
	require.NoError(t, err)

	in := input("New", "2000", domain.CurrencyUSD)
	in.Cycle = domain.CycleYearly
	in.Memo = "annual"
	got, err := svc.Update(ctx, personal(user), c.ID, in)
	require.NoError(t, err)
	require.Equal(t, "New", got.Name)
	require.Equal(t, domain.StatusActive, got.Status)

	stored, err := svc.Get(ctx, personal(user), c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CycleYearly, stored.Cycle)
	require.Equal(t, "annual", stored.Memo)
	require.True(t, dec("2000").Equal(stored.Amount))

	_, err = svc.List(ctx, personal(user), domain.ContractFilter{Status: "bogus"})
	require.ErrorIs(t, err, ErrInvalidContract)
}
