package sqlite

import (
	"context"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, email, display_name, flat_no, mobile, role, committees, status, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (domain.Profile, error) {
	var p domain.Profile
	var committees string
	err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.FlatNo, &p.Mobile,
		&p.Role, &committees, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	p.Committees = splitList(committees)
	return p, err
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) ListProfiles(ctx context.Context, role string) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	var args []any
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY display_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, display_name, flat_no, mobile, role, committees, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.DisplayName, p.FlatNo, p.Mobile, p.Role,
		joinList(p.Committees), p.Status)
	return mapConflict(err)
}

// UpdateProfile builds the SET clause from the non-nil fields of upd. A patch
// with nothing set is a no-op that still bumps updated_at via the timestamp
// column, matching how partial updates behave elsewhere.
func (r *profilesRepo) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}

	if upd.DisplayName != nil {
		sets = append(sets, "display_name = ?")
		args = append(args, *upd.DisplayName)
	}
	if upd.FlatNo != nil {
		sets = append(sets, "flat_no = ?")
		args = append(args, *upd.FlatNo)
	}
	if upd.Mobile != nil {
		sets = append(sets, "mobile = ?")
		args = append(args, *upd.Mobile)
	}
	if upd.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *upd.Role)
	}
	if upd.Committees != nil {
		sets = append(sets, "committees = ?")
		args = append(args, joinList(*upd.Committees))
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}
