package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
)

type notificationLogsRepo struct {
	c conn
}

func (r *notificationLogsRepo) Exists(ctx context.Context, contractID, typ string) (bool, error) {
	var n int
	err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM notification_logs WHERE contract_id = ? AND type = ?`,
		[]any{contractID, typ}, &n)
	return n > 0, err
}

func (r *notificationLogsRepo) Insert(ctx context.Context, l domain.NotificationLog) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO notification_logs (id, contract_id, type, sent_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.ContractID, l.Type, ts(l.SentAt))
	return err
}

func (r *notificationLogsRepo) ListForContract(ctx context.Context, contractID string) ([]domain.NotificationLog, error) {
	rows, err := r.c.query(ctx, `
		SELECT id, contract_id, type, sent_at FROM notification_logs
		WHERE contract_id = ? ORDER BY sent_at, id`,
		contractID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, func(l *domain.NotificationLog, _ []string) []any {
		return []any{&l.ID, &l.ContractID, &l.Type, timeCol{dst: &l.SentAt}}
	})
}
