package sqlite

import (
	"context"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, sender_id, sender_name, message) VALUES (?, ?, ?, ?)`,
		m.ID, m.SenderID, m.SenderName, m.Message)
	return err
}

func (r *messagesRepo) ListMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	query := `SELECT id, sender_id, sender_name, message, created_at
		FROM messages ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
