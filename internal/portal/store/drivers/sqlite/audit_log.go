package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type auditLogRepo struct {
	db dbtx
}

const defaultAuditLimit = 100

func (r *auditLogRepo) CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	details, err := marshalJSON(detailsOrNil(e.Details))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, user_id, user_email, action, resource_type, resource_id, details, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.UserEmail, e.Action, e.ResourceType, e.ResourceID,
		details, e.IPAddress)
	return err
}

// ListAuditEntries composes the WHERE clause from whichever filter fields are
// set. Email matching is a case-insensitive substring, mirroring how the
// audit viewer searches.
func (r *auditLogRepo) ListAuditEntries(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	var (
		conds []string
		args  []any
	)
	if f.Action != "" {
		conds = append(conds, "action = ?")
		args = append(args, f.Action)
	}
	if f.UserEmail != "" {
		conds = append(conds, "user_email LIKE ? COLLATE NOCASE")
		args = append(args, "%"+f.UserEmail+"%")
	}
	if f.ResourceType != "" {
		conds = append(conds, "resource_type = ?")
		args = append(args, f.ResourceType)
	}
	if f.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, *f.To)
	}

	query := `SELECT id, user_id, user_email, action, resource_type, resource_id, details, ip_address, created_at
		FROM audit_log`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT ?`

	limit := f.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e       domain.AuditEntry
			details sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserEmail, &e.Action,
			&e.ResourceType, &e.ResourceID, &details, &e.IPAddress,
			&e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Details, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func detailsOrNil(m map[string]any) any {
	if len(m) == 0 {
		return nil
	}
	return m
}
