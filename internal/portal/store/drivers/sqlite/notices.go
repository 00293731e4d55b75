package sqlite

import (
	"context"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type noticesRepo struct {
	db dbtx
}

const noticeColumns = `id, title, summary, category, date, file_url, file_type, is_auto, created_by, created_at`

func scanNotice(row interface{ Scan(...any) error }) (domain.Notice, error) {
	var n domain.Notice
	err := row.Scan(&n.ID, &n.Title, &n.Summary, &n.Category, &n.Date,
		&n.FileURL, &n.FileType, &n.IsAuto, &n.CreatedBy, &n.CreatedAt)
	return n, err
}

func (r *noticesRepo) GetNoticeByID(ctx context.Context, id string) (domain.Notice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noticeColumns+` FROM notices WHERE id = ?`, id)
	n, err := scanNotice(row)
	if err != nil {
		return domain.Notice{}, mapNotFound(err)
	}
	return n, nil
}

func (r *noticesRepo) ListNotices(ctx context.Context, category string, limit int) ([]domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *noticesRepo) CreateNotice(ctx context.Context, n domain.Notice) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notices (id, title, summary, category, date, file_url, file_type, is_auto, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Summary, n.Category, n.Date, n.FileURL, n.FileType,
		n.IsAuto, n.CreatedBy)
	return mapConflict(err)
}

func (r *noticesRepo) DeleteNotice(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
