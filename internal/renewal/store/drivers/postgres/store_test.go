package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/drivers/postgres"
	"github.com/aussiebroadwan/renewal/internal/renewal/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "renewal"
	pgPassword = "renewal"
)

// startPostgres runs postgres:16-alpine and returns a DSN template taking
// the database name.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%%s?sslmode=disable", pgUser, pgPassword, host, port.Port())
}

// freshDatabase creates an empty database and returns its DSN.
func freshDatabase(t *testing.T, dsnTemplate string, seq *atomic.Int64) string {
	t.Helper()
	ctx := context.Background()

	admin, err := sql.Open("pgx", fmt.Sprintf(dsnTemplate, "postgres"))
	require.NoError(t, err)
	defer admin.Close()

	name := fmt.Sprintf("renewal_test_%d", seq.Add(1))
	_, err = admin.ExecContext(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err)

	return fmt.Sprintf(dsnTemplate, name)
}

func openStore(t *testing.T, dsn string) *postgres.Store {
	t.Helper()
	s, err := postgres.NewStore(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPostgres(t *testing.T) {
	tmpl := startPostgres(t)
	var seq atomic.Int64

	t.Run("Conformance", func(t *testing.T) {
		storetest.Run(t, func(t *testing.T) store.Store {
			s := openStore(t, freshDatabase(t, tmpl, &seq))
			require.NoError(t, s.ApplyMigrations())
			return s
		})
	})

	t.Run("LegacySchema", func(t *testing.T) {
		ctx := context.Background()
		s := openStore(t, freshDatabase(t, tmpl, &seq))
		require.NoError(t, s.MigrateTo(1))

		caps, err := s.Capabilities(ctx)
		require.NoError(t, err)
		require.False(t, caps.Decisions)

		userID := storetest.NewUser(t, s, "legacy@example.com")
		c := storetest.NewContract(userID, "Phone", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, s.Contracts().Create(ctx, c))
		require.ErrorIs(t, s.Contracts().Keep(ctx, c.ID, userID, time.Now()), store.ErrUnknownColumn)

		require.NoError(t, s.ApplyMigrations())
		caps, err = s.Capabilities(ctx)
		require.NoError(t, err)
		require.True(t, caps.Decisions)
	})
}
