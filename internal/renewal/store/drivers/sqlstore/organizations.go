package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
)

type organizationsRepo struct {
	c conn
}

func (r *organizationsRepo) Create(ctx context.Context, org domain.Organization) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO organizations (id, name, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		org.ID, org.Name, org.OwnerID, ts(org.CreatedAt), ts(org.UpdatedAt))
	return err
}

func (r *organizationsRepo) Get(ctx context.Context, id string) (domain.Organization, error) {
	var o domain.Organization
	err := r.c.queryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at FROM organizations WHERE id = ?`,
		[]any{id},
		&o.ID, &o.Name, &o.OwnerID, timeCol{dst: &o.CreatedAt}, timeCol{dst: &o.UpdatedAt})
	return o, err
}

func (r *organizationsRepo) AddMember(ctx context.Context, m domain.Member) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO organization_members (organization_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)`,
		m.OrganizationID, m.UserID, string(m.Role), ts(m.CreatedAt))
	return err
}

func memberDest(m *domain.Member, _ []string) []any {
	return []any{&m.OrganizationID, &m.UserID, &m.Email, (*string)(&m.Role), timeCol{dst: &m.CreatedAt}}
}

const memberColumns = `m.organization_id, m.user_id, COALESCE(u.email, ''), m.role, m.created_at`

func (r *organizationsRepo) GetMember(ctx context.Context, orgID, userID string) (domain.Member, error) {
	var m domain.Member
	err := r.c.queryRow(ctx, `
		SELECT `+memberColumns+`
		FROM organization_members m LEFT JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = ? AND m.user_id = ?`,
		[]any{orgID, userID}, memberDest(&m, nil)...)
	return m, err
}

func (r *organizationsRepo) ListMembers(ctx context.Context, orgID string) ([]domain.Member, error) {
	rows, err := r.c.query(ctx, `
		SELECT `+memberColumns+`
		FROM organization_members m LEFT JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = ?
		ORDER BY m.created_at, m.user_id`,
		orgID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, memberDest)
}

func (r *organizationsRepo) HasMemberWithEmail(ctx context.Context, orgID, email string) (bool, error) {
	var n int
	err := r.c.queryRow(ctx, `
		SELECT COUNT(*)
		FROM organization_members m JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = ? AND LOWER(u.email) = LOWER(?)`,
		[]any{orgID, email}, &n)
	return n > 0, err
}

func (r *organizationsRepo) ListForUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.c.query(ctx, `
		SELECT o.id, o.name, o.owner_id, o.created_at, o.updated_at, m.role
		FROM organizations o JOIN organization_members m ON m.organization_id = o.id
		WHERE m.user_id = ?
		ORDER BY o.name, o.id`,
		userID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, func(ms *domain.Membership, _ []string) []any {
		o := &ms.Organization
		return []any{&o.ID, &o.Name, &o.OwnerID, timeCol{dst: &o.CreatedAt}, timeCol{dst: &o.UpdatedAt}, (*string)(&ms.Role)}
	})
}
