// Package sqlstore implements store.Store on database/sql. The sqlite and
// postgres drivers wrap it with their connection setup, dialect and
// embedded migrations.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/renewal/internal/renewal/store"
)

// Dialect covers what differs between the supported databases.
type Dialect interface {
	Name() string

	// Rebind rewrites ? placeholders into the driver's form.
	Rebind(query string) string

	IsUniqueViolation(err error) bool
	IsUndefinedColumn(err error) bool

	// ExactDecimals reports whether money columns add without rounding in
	// SQL. When false, arithmetic happens in Go on the stored text.
	ExactDecimals() bool
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the pool to drivers (migrations).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) conn() conn { return conn{db: s.db, d: s.dialect} }

func (s *Store) Users() store.Users                       { return &usersRepo{c: s.conn()} }
func (s *Store) Organizations() store.Organizations       { return &organizationsRepo{c: s.conn()} }
func (s *Store) Contracts() store.Contracts               { return &contractsRepo{c: s.conn()} }
func (s *Store) Invitations() store.Invitations           { return &invitationsRepo{c: s.conn()} }
func (s *Store) NotificationLogs() store.NotificationLogs { return &notificationLogsRepo{c: s.conn()} }
func (s *Store) Guides() store.Guides                     { return &guidesRepo{c: s.conn()} }

// Capabilities probes for the decision columns with a statement that
// never returns rows.
func (s *Store) Capabilities(ctx context.Context) (store.Capabilities, error) {
	return probeCapabilities(ctx, s.conn())
}

func probeCapabilities(ctx context.Context, c conn) (store.Capabilities, error) {
	rows, err := c.query(ctx, `SELECT decision_status, decision_date FROM contracts WHERE 1 = 0`)
	switch {
	case errors.Is(err, store.ErrUnknownColumn):
		return store.Capabilities{Decisions: false}, nil
	case err != nil:
		return store.Capabilities{}, fmt.Errorf("probe capabilities: %w", err)
	}
	_ = rows.Close()
	return store.Capabilities{Decisions: true}, nil
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// conn binds a DBTX to a dialect and maps driver errors to store errors.
type conn struct {
	db DBTX
	d  Dialect
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.db.ExecContext(ctx, c.d.Rebind(query), args...)
	return res, c.mapErr(err)
}

// execOne runs a statement that must affect at least one row.
func (c conn) execOne(ctx context.Context, query string, args ...any) error {
	res, err := c.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := c.db.QueryContext(ctx, c.d.Rebind(query), args...)
	return rows, c.mapErr(err)
}

func (c conn) queryRow(ctx context.Context, query string, args []any, dest ...any) error {
	err := c.db.QueryRowContext(ctx, c.d.Rebind(query), args...).Scan(dest...)
	return c.mapErr(err)
}

func (c conn) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case c.d.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	case c.d.IsUndefinedColumn(err):
		return fmt.Errorf("%w: %v", store.ErrUnknownColumn, err)
	}
	return err
}
