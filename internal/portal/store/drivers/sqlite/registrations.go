package sqlite

import (
	"context"
	"database/sql"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type registrationsRepo struct {
	db dbtx
}

const registrationColumns = `id, owner_name, flat_no, mobile, email, status,
	permissions, reviewed_by, review_date, request_date`

func scanRegistration(row interface{ Scan(...any) error }) (domain.RegistrationRequest, error) {
	var (
		reg        domain.RegistrationRequest
		perms      sql.NullString
		reviewDate sql.NullTime
	)
	err := row.Scan(&reg.ID, &reg.OwnerName, &reg.FlatNo, &reg.Mobile,
		&reg.Email, &reg.Status, &perms, &reg.ReviewedBy, &reviewDate,
		&reg.RequestDate)
	if err != nil {
		return domain.RegistrationRequest{}, err
	}

	reg.ReviewDate = mapNullTimePtr(reviewDate)
	reg.Permissions, err = unmarshalPermissions(perms)
	return reg, err
}

func (r *registrationsRepo) GetRegistrationByID(ctx context.Context, id string) (domain.RegistrationRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registration_requests WHERE id = ?`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		return domain.RegistrationRequest{}, mapNotFound(err)
	}
	return reg, nil
}

func (r *registrationsRepo) ListRegistrations(ctx context.Context, status string) ([]domain.RegistrationRequest, error) {
	query := `SELECT ` + registrationColumns + ` FROM registration_requests`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY request_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RegistrationRequest
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *registrationsRepo) CreateRegistration(ctx context.Context, reg domain.RegistrationRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO registration_requests (id, owner_name, flat_no, mobile, email)
		 VALUES (?, ?, ?, ?, ?)`,
		reg.ID, reg.OwnerName, reg.FlatNo, reg.Mobile, reg.Email)
	return mapConflict(err)
}

func (r *registrationsRepo) UpdateRegistrationStatus(ctx context.Context, id, status, reviewedBy string, perms *domain.Permissions) error {
	permsJSON, err := marshalJSON(permsOrNil(perms))
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE registration_requests
		 SET status = ?, reviewed_by = ?, review_date = CURRENT_TIMESTAMP, permissions = ?
		 WHERE id = ?`,
		status, reviewedBy, permsJSON, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func permsOrNil(p *domain.Permissions) any {
	if p == nil {
		return nil
	}
	return *p
}
