package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
)

type invitationsRepo struct {
	c conn
}

const invitationColumns = `id, organization_id, email, role, token_hash, invited_by, expires_at, accepted_at, accepted_by, created_at`

func invitationDest(i *domain.Invitation, _ []string) []any {
	return []any{
		&i.ID, &i.OrganizationID, &i.Email, (*string)(&i.Role), &i.TokenHash, &i.InvitedBy,
		timeCol{dst: &i.ExpiresAt}, nullTimeCol{&i.AcceptedAt}, nullStringCol{&i.AcceptedBy},
		timeCol{dst: &i.CreatedAt},
	}
}

func (r *invitationsRepo) one(ctx context.Context, query string, args ...any) (domain.Invitation, error) {
	var inv domain.Invitation
	err := r.c.queryRow(ctx, query, args, invitationDest(&inv, nil)...)
	return inv, err
}

func (r *invitationsRepo) Create(ctx context.Context, inv domain.Invitation) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.OrganizationID, inv.Email, string(inv.Role), inv.TokenHash, inv.InvitedBy,
		ts(inv.ExpiresAt), nullTime(inv.AcceptedAt), nullString(inv.AcceptedBy), ts(inv.CreatedAt))
	return err
}

func (r *invitationsRepo) Get(ctx context.Context, id string) (domain.Invitation, error) {
	return r.one(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
}

func (r *invitationsRepo) GetByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	return r.one(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
}

func (r *invitationsRepo) HasPending(ctx context.Context, orgID, email string, now time.Time) (bool, error) {
	var n int
	err := r.c.queryRow(ctx, `
		SELECT COUNT(*) FROM invitations
		WHERE organization_id = ? AND LOWER(email) = LOWER(?)
			AND accepted_at IS NULL AND expires_at > ?`,
		[]any{orgID, email, ts(now)}, &n)
	return n > 0, err
}

func (r *invitationsRepo) ListPending(ctx context.Context, orgID string, now time.Time) ([]domain.Invitation, error) {
	rows, err := r.c.query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE organization_id = ? AND accepted_at IS NULL AND expires_at > ?
		ORDER BY created_at, id`,
		orgID, ts(now))
	if err != nil {
		return nil, err
	}
	return scanRows(rows, invitationDest)
}

func (r *invitationsRepo) MarkAccepted(ctx context.Context, id, userID string, at time.Time) error {
	return r.c.execOne(ctx, `
		UPDATE invitations SET accepted_at = ?, accepted_by = ?
		WHERE id = ? AND accepted_at IS NULL`,
		ts(at), userID, id)
}

func (r *invitationsRepo) Delete(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM invitations WHERE id = ?`, id)
}

func (r *invitationsRepo) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.c.exec(ctx, `
		DELETE FROM invitations
		WHERE expires_at < ? OR (accepted_at IS NOT NULL AND accepted_at < ?)`,
		ts(cutoff), ts(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
