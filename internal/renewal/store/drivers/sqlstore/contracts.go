package sqlstore

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/shopspring/decimal"
)

type contractsRepo struct {
	c conn
}

// contractDest maps result columns onto c by name. Reads use SELECT * so
// they work with or without the decision columns.
func contractDest(c *domain.Contract, cols []string) []any {
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &c.ID
		case "user_id":
			dest[i] = &c.UserID
		case "organization_id":
			dest[i] = nullStringCol{&c.OrganizationID}
		case "name":
			dest[i] = &c.Name
		case "memo":
			dest[i] = nullStringCol{&c.Memo}
		case "amount":
			dest[i] = &c.Amount
		case "currency":
			dest[i] = (*string)(&c.Currency)
		case "cycle":
			dest[i] = (*string)(&c.Cycle)
		case "expires_at":
			dest[i] = timeCol{dst: &c.ExpiresAt, date: true}
		case "notice_days":
			dest[i] = &c.NoticeDays
		case "auto_renew":
			dest[i] = &c.AutoRenew
		case "status":
			dest[i] = (*string)(&c.Status)
		case "decision_status":
			dest[i] = nullStringCol{(*string)(&c.Decision)}
		case "decision_date":
			dest[i] = nullTimeCol{&c.DecisionDate}
		case "saved_amount":
			dest[i] = &c.SavedAmount
		case "guide_slug":
			dest[i] = nullStringCol{&c.GuideSlug}
		case "created_at":
			dest[i] = timeCol{dst: &c.CreatedAt}
		case "updated_at":
			dest[i] = timeCol{dst: &c.UpdatedAt}
		default:
			dest[i] = new(any)
		}
	}
	return dest
}

func (r *contractsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Contract, error) {
	rows, err := r.c.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, contractDest)
}

func (r *contractsRepo) Create(ctx context.Context, c domain.Contract) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO contracts (
			id, user_id, organization_id, name, memo, amount, currency, cycle,
			expires_at, notice_days, auto_renew, status, saved_amount, guide_slug,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, nullString(c.OrganizationID), c.Name, c.Memo, c.Amount,
		string(c.Currency), string(c.Cycle), dateArg(c.ExpiresAt), c.NoticeDays, c.AutoRenew,
		string(c.Status), c.SavedAmount, nullString(c.GuideSlug),
		ts(c.CreatedAt), ts(c.UpdatedAt),
	)
	return err
}

func (r *contractsRepo) Get(ctx context.Context, id, userID string) (domain.Contract, error) {
	cs, err := r.list(ctx, `SELECT * FROM contracts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return domain.Contract{}, err
	}
	if len(cs) == 0 {
		return domain.Contract{}, store.ErrNotFound
	}
	return cs[0], nil
}

func (r *contractsRepo) List(ctx context.Context, userID string, f domain.ContractFilter) ([]domain.Contract, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.OrganizationID != "" {
		where = append(where, "organization_id = ?")
		args = append(args, f.OrganizationID)
	}
	return r.list(ctx, `SELECT * FROM contracts WHERE `+strings.Join(where, " AND ")+` ORDER BY expires_at, id`, args...)
}

func (r *contractsRepo) Update(ctx context.Context, c domain.Contract) error {
	return r.c.execOne(ctx, `
		UPDATE contracts SET
			name = ?, memo = ?, amount = ?, currency = ?, cycle = ?, expires_at = ?,
			notice_days = ?, auto_renew = ?, guide_slug = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		c.Name, c.Memo, c.Amount, string(c.Currency), string(c.Cycle), dateArg(c.ExpiresAt),
		c.NoticeDays, c.AutoRenew, nullString(c.GuideSlug), ts(c.UpdatedAt),
		c.ID, c.UserID,
	)
}

func (r *contractsRepo) Renew(ctx context.Context, id, userID string, next time.Time, clearDecision bool, at time.Time) error {
	set := `status = 'active', expires_at = ?, updated_at = ?`
	if clearDecision {
		set += `, decision_status = NULL, decision_date = NULL`
	}
	return r.c.execOne(ctx, `UPDATE contracts SET `+set+` WHERE id = ? AND user_id = ?`,
		dateArg(next), ts(at), id, userID)
}

func (r *contractsRepo) Terminate(ctx context.Context, id, userID string, saved decimal.Decimal, withDecision bool, at time.Time) error {
	if withDecision {
		return r.c.execOne(ctx, `
			UPDATE contracts SET
				status = 'terminated', saved_amount = ?, decision_status = 'terminated',
				decision_date = ?, updated_at = ?
			WHERE id = ? AND user_id = ? AND status <> 'terminated'`,
			saved, ts(at), ts(at), id, userID)
	}
	return r.c.execOne(ctx, `
		UPDATE contracts SET status = 'terminated', saved_amount = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND status <> 'terminated'`,
		saved, ts(at), id, userID)
}

func (r *contractsRepo) Keep(ctx context.Context, id, userID string, at time.Time) error {
	return r.c.execOne(ctx, `
		UPDATE contracts SET decision_status = 'kept', decision_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		ts(at), ts(at), id, userID)
}

func (r *contractsRepo) MarkRenewed(ctx context.Context, id, userID string, at time.Time) error {
	return r.c.execOne(ctx, `
		UPDATE contracts SET status = 'renewed', updated_at = ?
		WHERE id = ? AND user_id = ?`,
		ts(at), id, userID)
}

func (r *contractsRepo) Delete(ctx context.Context, id, userID string) error {
	return r.c.execOne(ctx, `DELETE FROM contracts WHERE id = ? AND user_id = ?`, id, userID)
}

func (r *contractsRepo) CountActive(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM contracts WHERE user_id = ? AND status = 'active'`,
		[]any{userID}, &n)
	return n, err
}

func (r *contractsRepo) ListActive(ctx context.Context, userID string, undecidedOnly bool) ([]domain.Contract, error) {
	query := `SELECT * FROM contracts WHERE user_id = ? AND status = 'active'`
	if undecidedOnly {
		query += ` AND decision_status IS NULL`
	}
	return r.list(ctx, query+` ORDER BY expires_at, id`, userID)
}

func (r *contractsRepo) ListExpiringOn(ctx context.Context, date time.Time) ([]domain.Contract, error) {
	return r.list(ctx, `SELECT * FROM contracts WHERE status = 'active' AND expires_at = ? ORDER BY user_id, id`,
		dateArg(date))
}
