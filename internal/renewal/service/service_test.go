package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/drivers/sqlite"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/storetest"
	"github.com/aussiebroadwan/renewal/pkg/idx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// 09:00 in Seoul on 2026-05-01.
var testNow = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

var seoul = time.FixedZone("KST", 9*60*60)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newLegacyStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.MigrateTo(1))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func schemaOf(t *testing.T, s store.Store) *SchemaFlags {
	t.Helper()
	flags, err := DetectSchema(context.Background(), s)
	require.NoError(t, err)
	return flags
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type staticRate decimal.Decimal

func (r staticRate) Current(context.Context) domain.ExchangeRate {
	return domain.ExchangeRate{
		Base:      domain.CurrencyUSD,
		Quote:     domain.CurrencyKRW,
		Rate:      decimal.Decimal(r),
		Source:    domain.RateSourceLive,
		FetchedAt: testNow,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func today() time.Time { return domain.DateOf(testNow, seoul) }

func personal(userID string) domain.Tenant {
	return domain.Tenant{UserID: userID}
}

// newOrganization creates an organization owned by ownerID and returns the
// owner's tenant.
func newOrganization(t *testing.T, s store.Store, ownerID string) domain.Tenant {
	t.Helper()
	ctx := context.Background()
	org := domain.Organization{ID: idx.NewString(), Name: "Acme", OwnerID: ownerID, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, s.Organizations().Create(ctx, org))
	require.NoError(t, s.Organizations().AddMember(ctx, domain.Member{
		OrganizationID: org.ID, UserID: ownerID, Role: domain.RoleOwner, CreatedAt: testNow,
	}))
	return domain.Tenant{UserID: ownerID, OrganizationID: org.ID, Role: domain.RoleOwner}
}

func addMember(t *testing.T, s store.Store, orgID, userID string, role domain.Role) domain.Tenant {
	t.Helper()
	require.NoError(t, s.Organizations().AddMember(context.Background(), domain.Member{
		OrganizationID: orgID, UserID: userID, Role: role, CreatedAt: testNow,
	}))
	return domain.Tenant{UserID: userID, OrganizationID: orgID, Role: role}
}

func newUser(t *testing.T, s store.Store, email string) string {
	return storetest.NewUser(t, s, email)
}
