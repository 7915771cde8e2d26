package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	d := dialect{}
	require.Equal(t,
		"UPDATE contracts SET status = $1 WHERE id = $2 AND user_id = $3",
		d.Rebind("UPDATE contracts SET status = ? WHERE id = ? AND user_id = ?"))
	require.Equal(t, "SELECT 1", d.Rebind("SELECT 1"))
}

func TestErrorClassification(t *testing.T) {
	d := dialect{}

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	undefined := &pgconn.PgError{Code: pgerrcode.UndefinedColumn}

	require.True(t, d.IsUniqueViolation(unique))
	require.True(t, d.IsUniqueViolation(errors.Join(errors.New("insert"), unique)))
	require.False(t, d.IsUniqueViolation(undefined))

	require.True(t, d.IsUndefinedColumn(undefined))
	require.False(t, d.IsUndefinedColumn(errors.New("no such column: decision_status")))
}
