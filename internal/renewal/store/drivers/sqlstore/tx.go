package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/renewal/internal/renewal/store"
)

type txStore struct {
	tx      *sql.Tx
	dialect Dialect
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{tx: tx, dialect: d}
}

func (t *txStore) conn() conn { return conn{db: t.tx, d: t.dialect} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the pool stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op; migrations run before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Capabilities(ctx context.Context) (store.Capabilities, error) {
	return probeCapabilities(ctx, t.conn())
}

func (t *txStore) Users() store.Users                       { return &usersRepo{c: t.conn()} }
func (t *txStore) Organizations() store.Organizations       { return &organizationsRepo{c: t.conn()} }
func (t *txStore) Contracts() store.Contracts               { return &contractsRepo{c: t.conn()} }
func (t *txStore) Invitations() store.Invitations           { return &invitationsRepo{c: t.conn()} }
func (t *txStore) NotificationLogs() store.NotificationLogs { return &notificationLogsRepo{c: t.conn()} }
func (t *txStore) Guides() store.Guides                     { return &guidesRepo{c: t.conn()} }
