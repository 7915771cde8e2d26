package renewal_test

import (
	"testing"

	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	svc := setupRenewalContainer(t)
	client := renewalsdk.NewClient(svc.baseURL, "")

	health, err := client.Livez(t.Context())
	assertHealthy(t, health, err)

	health, err = client.Readyz(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Keys)
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	svc := setupRenewalContainer(t)

	_, err := renewalsdk.NewClient(svc.baseURL, "").Me(t.Context())
	require.ErrorIs(t, err, renewalsdk.ErrUnauthenticated)

	_, err = renewalsdk.NewClient(svc.baseURL, "not-a-jwt").ListContracts(t.Context(), "")
	require.ErrorIs(t, err, renewalsdk.ErrUnauthenticated)
}
