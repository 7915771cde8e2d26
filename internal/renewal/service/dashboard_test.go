package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	contracts := newContractService(t, s)
	dash := &DashboardService{
		Store:    s,
		Rates:    contracts.Rates,
		Schema:   contracts.Schema,
		Location: seoul,
		Now:      contracts.Now,
	}
	user := newUser(t, s, "dash@example.com")

	soon := input("Soon", "62000", domain.CurrencyKRW)
	soon.ExpiresAt = domain.AddDays(today(), 3)
	c, err := contracts.Create(ctx, personal(user), soon)
	require.NoError(t, err)

	usd := input("Hosting", "10", domain.CurrencyUSD)
	usd.ExpiresAt = domain.AddDays(today(), 60)
	_, err = contracts.Create(ctx, personal(user), usd)
	require.NoError(t, err)

	sum, err := dash.Summary(ctx, personal(user))
	require.NoError(t, err)
	require.Equal(t, 1, sum.Urgent)
	require.Equal(t, 1, sum.Normal)
	require.True(t, dec("62000").Equal(sum.TotalMonthlyKRW))
	require.True(t, dec("10").Equal(sum.TotalMonthlyUSD))
	require.True(t, dec("76000").Equal(sum.TotalMonthly), sum.TotalMonthly.String())
	require.NotNil(t, sum.Featured)
	require.Equal(t, c.ID, sum.Featured.Contract.ID)
	require.Len(t, sum.Alerts, 1)

	t.Run("kept contracts leave the dashboard", func(t *testing.T) {
		_, err := contracts.Keep(ctx, personal(user), c.ID)
		require.NoError(t, err)

		sum, err := dash.Summary(ctx, personal(user))
		require.NoError(t, err)
		require.Equal(t, 0, sum.Urgent)
		require.Nil(t, sum.Featured)
		require.Empty(t, sum.Alerts)
	})
}

func TestDashboardSummaryLegacySchema(t *testing.T) {
	ctx := context.Background()
	s := newLegacyStore(t)
	contracts := newContractService(t, s)
	dash := &DashboardService{Store: s, Rates: contracts.Rates, Schema: contracts.Schema, Location: seoul, Now: contracts.Now}
	user := newUser(t, s, "legacy@example.com")

	_, err := contracts.Create(ctx, personal(user), input("Phone", "55000", domain.CurrencyKRW))
	require.NoError(t, err)

	sum, err := dash.Summary(ctx, personal(user))
	require.NoError(t, err)
	require.Equal(t, 1, sum.Warning)
	require.True(t, dec("55000").Equal(sum.TotalMonthly))
}
