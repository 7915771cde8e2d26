package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnknownColumn is returned when a statement names a column the
	// connected schema does not have (externally managed, not yet migrated).
	ErrUnknownColumn = errors.New("store: unknown column")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it. Sub-repositories keep concerns apart and make it
// impossible to open a transaction inside a transaction.
type Store interface {
	Users() Users
	Organizations() Organizations
	Contracts() Contracts
	Invitations() Invitations
	NotificationLogs() NotificationLogs
	Guides() Guides

	ApplyMigrations() error

	// Capabilities probes optional schema features. Callers resolve it once
	// at startup and cache the result.
	Capabilities(ctx context.Context) (Capabilities, error)

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	// fn must only use the Tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Capabilities are optional parts of the schema.
type Capabilities struct {
	// Decisions is true when contracts carry decision_status and decision_date.
	Decisions bool
}

type Users interface {
	// Ensure inserts the user on first sight. On later calls it only
	// refreshes a changed, non-empty email.
	Ensure(ctx context.Context, id, email string, at time.Time) error

	Get(ctx context.Context, id string) (domain.User, error)

	// IncrementSavedKRW atomically adds amount to total_saved_krw.
	IncrementSavedKRW(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error

	SetPlan(ctx context.Context, id, plan string, at time.Time) error

	// Lock holds the user's row until the enclosing transaction ends so
	// per-user checks serialize. A missing user is not an error.
	Lock(ctx context.Context, id string) error

	IsSuperAdmin(ctx context.Context, id string) (bool, error)
	GrantSuperAdmin(ctx context.Context, id string, at time.Time) error
}

type Organizations interface {
	Create(ctx context.Context, org domain.Organization) error
	Get(ctx context.Context, id string) (domain.Organization, error)

	// AddMember returns ErrAlreadyExists when the user is already a member.
	AddMember(ctx context.Context, m domain.Member) error
	GetMember(ctx context.Context, orgID, userID string) (domain.Member, error)
	ListMembers(ctx context.Context, orgID string) ([]domain.Member, error)
	HasMemberWithEmail(ctx context.Context, orgID, email string) (bool, error)

	// ListForUser returns the organizations userID belongs to with their role.
	ListForUser(ctx context.Context, userID string) ([]domain.Membership, error)
}

// Contracts are always addressed by (id, owner). A statement that touches
// no row reports ErrNotFound whether the row is missing or owned by someone
// else.
type Contracts interface {
	Create(ctx context.Context, c domain.Contract) error
	Get(ctx context.Context, id, userID string) (domain.Contract, error)
	List(ctx context.Context, userID string, f domain.ContractFilter) ([]domain.Contract, error)

	// Update writes the user-editable fields only.
	Update(ctx context.Context, c domain.Contract) error

	// Renew sets status=active and the new expiry in one statement.
	// clearDecision also resets the decision columns.
	Renew(ctx context.Context, id, userID string, next time.Time, clearDecision bool, at time.Time) error

	// Terminate records the outcome. withDecision also sets
	// decision_status=terminated. A contract that is already terminated
	// is left alone and reported as ErrNotFound.
	Terminate(ctx context.Context, id, userID string, saved decimal.Decimal, withDecision bool, at time.Time) error

	// Keep sets decision_status=kept. Requires the decision columns.
	Keep(ctx context.Context, id, userID string, at time.Time) error

	// MarkRenewed is the status-only form of Keep.
	MarkRenewed(ctx context.Context, id, userID string, at time.Time) error

	Delete(ctx context.Context, id, userID string) error

	CountActive(ctx context.Context, userID string) (int, error)

	// ListActive returns active contracts. undecidedOnly additionally drops
	// contracts with a recorded decision and requires the decision columns.
	ListActive(ctx context.Context, userID string, undecidedOnly bool) ([]domain.Contract, error)

	// ListExpiringOn returns active contracts of every user expiring on date.
	ListExpiringOn(ctx context.Context, date time.Time) ([]domain.Contract, error)
}

type Invitations interface {
	Create(ctx context.Context, inv domain.Invitation) error
	Get(ctx context.Context, id string) (domain.Invitation, error)
	GetByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// HasPending reports an unaccepted, unexpired invitation for (org, email).
	HasPending(ctx context.Context, orgID, email string, now time.Time) (bool, error)
	ListPending(ctx context.Context, orgID string, now time.Time) ([]domain.Invitation, error)

	// MarkAccepted only succeeds once; a second call reports ErrNotFound.
	MarkAccepted(ctx context.Context, id, userID string, at time.Time) error

	Delete(ctx context.Context, id string) error

	// DeleteStale removes invitations that expired or were accepted before cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationLogs is the append-only reminder ledger.
type NotificationLogs interface {
	Exists(ctx context.Context, contractID, typ string) (bool, error)

	// Insert returns ErrAlreadyExists when (contract, type) is already logged.
	Insert(ctx context.Context, l domain.NotificationLog) error

	ListForContract(ctx context.Context, contractID string) ([]domain.NotificationLog, error)
}

type Guides interface {
	List(ctx context.Context) ([]domain.CancellationGuide, error)
	Get(ctx context.Context, slug string) (domain.CancellationGuide, error)
	Upsert(ctx context.Context, g domain.CancellationGuide) error
}
