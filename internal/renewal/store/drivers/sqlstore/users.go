package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/shopspring/decimal"
)

type usersRepo struct {
	c conn
}

func (r *usersRepo) Ensure(ctx context.Context, id, email string, at time.Time) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO users (id, email, plan, total_saved_krw, created_at, updated_at)
		VALUES (?, ?, ?, '0', ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			updated_at = excluded.updated_at
		WHERE excluded.email <> '' AND users.email <> excluded.email`,
		id, email, domain.PlanFree, ts(at), ts(at))
	return err
}

func (r *usersRepo) Get(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.c.queryRow(ctx, `
		SELECT id, email, plan, total_saved_krw, created_at, updated_at
		FROM users WHERE id = ?`,
		[]any{id},
		&u.ID, &u.Email, &u.Plan, &u.TotalSavedKRW, timeCol{dst: &u.CreatedAt}, timeCol{dst: &u.UpdatedAt})
	return u, err
}

// IncrementSavedKRW adds amount to total_saved_krw without losing concurrent
// updates. A missing user row is created.
func (r *usersRepo) IncrementSavedKRW(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error {
	if r.c.d.ExactDecimals() {
		_, err := r.c.exec(ctx, `
			INSERT INTO users (id, email, plan, total_saved_krw, created_at, updated_at)
			VALUES (?, '', ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				total_saved_krw = users.total_saved_krw + excluded.total_saved_krw,
				updated_at = excluded.updated_at`,
			id, domain.PlanFree, amount, ts(at), ts(at))
		return err
	}
	return r.compareAndAddSaved(ctx, id, amount, at)
}

// maxSavedRetries bounds compareAndAddSaved under contention.
const maxSavedRetries = 50

// compareAndAddSaved adds in Go and writes back only if the stored text is
// unchanged since it was read.
func (r *usersRepo) compareAndAddSaved(ctx context.Context, id string, amount decimal.Decimal, at time.Time) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO users (id, email, plan, total_saved_krw, created_at, updated_at)
		VALUES (?, '', ?, '0', ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		id, domain.PlanFree, ts(at), ts(at))
	if err != nil {
		return err
	}

	for range maxSavedRetries {
		var current string
		if err := r.c.queryRow(ctx, `SELECT total_saved_krw FROM users WHERE id = ?`, []any{id}, &current); err != nil {
			return err
		}
		total, err := decimal.NewFromString(current)
		if err != nil {
			return fmt.Errorf("parse total_saved_krw %q: %w", current, err)
		}

		err = r.c.execOne(ctx, `
			UPDATE users SET total_saved_krw = ?, updated_at = ?
			WHERE id = ? AND total_saved_krw = ?`,
			total.Add(amount).String(), ts(at), id, current)
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return fmt.Errorf("increment total_saved_krw for %s: too many concurrent updates", id)
}

// Lock uses a no-op UPDATE: a row lock on Postgres, the write lock on SQLite.
func (r *usersRepo) Lock(ctx context.Context, id string) error {
	_, err := r.c.exec(ctx, `UPDATE users SET plan = plan WHERE id = ?`, id)
	return err
}

func (r *usersRepo) SetPlan(ctx context.Context, id, plan string, at time.Time) error {
	return r.c.execOne(ctx, `UPDATE users SET plan = ?, updated_at = ? WHERE id = ?`, plan, ts(at), id)
}

func (r *usersRepo) IsSuperAdmin(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM super_admins WHERE user_id = ?`, []any{id}, &n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) GrantSuperAdmin(ctx context.Context, id string, at time.Time) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO super_admins (user_id, created_at) VALUES (?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		id, ts(at))
	return err
}
