package renewal_test

import (
	"testing"

	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// TestContractLifecycle walks one contract through create, dashboard,
// terminate and delete.
func TestContractLifecycle(t *testing.T) {
	svc := setupRenewalContainer(t)
	_, client := svc.newUser(t, "owner@example.com")
	ctx := t.Context()

	netflix, err := client.CreateContract(ctx, renewalsdk.ContractRequest{
		Name:      "Netflix",
		Amount:    amount("17000"),
		Currency:  "KRW",
		Cycle:     "monthly",
		ExpiresAt: seoulDate(3),
	})
	require.NoError(t, err)
	require.Equal(t, "active", netflix.Status)
	require.Equal(t, 3, netflix.DaysUntil)
	require.Equal(t, "danger", netflix.Urgency)
	require.Equal(t, renewalsdk.DefaultNoticeDays, netflix.NoticeDays)

	hosting, err := client.CreateContract(ctx, renewalsdk.ContractRequest{
		Name:      "Hosting",
		Amount:    amount("20"),
		Currency:  "usd",
		Cycle:     "monthly",
		ExpiresAt: seoulDate(60),
	})
	require.NoError(t, err)
	require.Equal(t, "USD", hosting.Currency)

	summary, err := client.DashboardSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Urgent)
	require.Equal(t, 1, summary.Normal)
	require.NotNil(t, summary.Featured)
	require.Equal(t, netflix.ID, summary.Featured.Contract.ID)
	require.Equal(t, "fallback", summary.ExchangeRate.Source)
	require.True(t, summary.TotalMonthlyKRW.Equal(decimal.NewFromInt(17000)))
	require.True(t, summary.TotalMonthlyUSD.Equal(decimal.NewFromInt(20)))

	// USD savings are converted at the fallback rate.
	result, err := client.TerminateContract(ctx, hosting.ID, renewalsdk.TerminateRequest{SavedAmount: amount("20")})
	require.NoError(t, err)
	require.Equal(t, "terminated", result.Contract.Status)
	require.True(t, result.SavedKRW.Equal(decimal.NewFromInt(28000)), result.SavedKRW.String())
	require.True(t, result.AccumulatorUpdated)

	_, err = client.TerminateContract(ctx, hosting.ID, renewalsdk.TerminateRequest{SavedAmount: amount("20")})
	require.ErrorIs(t, err, renewalsdk.ErrInvalidTransition)

	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.TotalSavedKRW.Equal(decimal.NewFromInt(28000)))

	err = client.DeleteContract(ctx, hosting.ID, false)
	require.ErrorIs(t, err, renewalsdk.ErrConfirmationRequired)
	require.NoError(t, client.DeleteContract(ctx, hosting.ID, true))

	_, err = client.GetContract(ctx, hosting.ID)
	require.ErrorIs(t, err, renewalsdk.ErrNotFound)

	renewed, err := client.RenewContract(ctx, netflix.ID, seoulDate(33))
	require.NoError(t, err)
	require.Equal(t, seoulDate(33), renewed.ExpiresAt)
	require.Equal(t, "success", renewed.Urgency)
}

func TestFreePlanContractLimit(t *testing.T) {
	svc := setupRenewalContainer(t)
	_, client := svc.newUser(t, "free@example.com")
	ctx := t.Context()

	for i := range 5 {
		_, err := client.CreateContract(ctx, renewalsdk.ContractRequest{
			Name:      "Service",
			Amount:    amount("1000"),
			Currency:  "KRW",
			Cycle:     "monthly",
			ExpiresAt: seoulDate(10 + i),
		})
		require.NoError(t, err)
	}

	_, err := client.CreateContract(ctx, renewalsdk.ContractRequest{
		Name:      "One too many",
		Amount:    amount("1000"),
		Currency:  "KRW",
		Cycle:     "monthly",
		ExpiresAt: seoulDate(20),
	})
	require.ErrorIs(t, err, renewalsdk.ErrPlanLimit)
}

func TestContractsAreScopedToOwner(t *testing.T) {
	svc := setupRenewalContainer(t)
	_, alice := svc.newUser(t, "alice@example.com")
	_, bob := svc.newUser(t, "bob@example.com")
	ctx := t.Context()

	c, err := alice.CreateContract(ctx, renewalsdk.ContractRequest{
		Name:      "Gym",
		Amount:    amount("50000"),
		Currency:  "KRW",
		Cycle:     "monthly",
		ExpiresAt: seoulDate(15),
	})
	require.NoError(t, err)

	_, err = bob.GetContract(ctx, c.ID)
	require.ErrorIs(t, err, renewalsdk.ErrNotFound)

	list, err := bob.ListContracts(ctx, "")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCronTriggerSendsReminderOnce(t *testing.T) {
	svc := setupRenewalContainer(t)
	_, client := svc.newUser(t, "remind@example.com")
	ctx := t.Context()

	_, err := client.CreateContract(ctx, renewalsdk.ContractRequest{
		Name:      "Insurance",
		Amount:    amount("90000"),
		Currency:  "KRW",
		Cycle:     "yearly",
		ExpiresAt: seoulDate(7),
	})
	require.NoError(t, err)

	_, err = client.RunNotifications(ctx, "wrong-secret")
	require.ErrorIs(t, err, renewalsdk.ErrUnauthenticated)

	first, err := client.RunNotifications(ctx, testCronSecret)
	require.NoError(t, err)
	require.Equal(t, 1, first.Total)

	second, err := client.RunNotifications(ctx, testCronSecret)
	require.NoError(t, err)
	require.Equal(t, 0, second.Total)
}
