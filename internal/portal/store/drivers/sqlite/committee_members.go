package sqlite

import (
	"context"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type committeeMembersRepo struct {
	db dbtx
}

// UpsertCommitteeMember replaces whoever currently holds the (committee, slot)
// seat. The row id is only used on first insert; an existing seat keeps its id.
func (r *committeeMembersRepo) UpsertCommitteeMember(ctx context.Context, m domain.CommitteeMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO committee_members (id, committee, slot, member_name, profile_id)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (committee, slot) DO UPDATE SET
		   member_name = excluded.member_name,
		   profile_id  = excluded.profile_id,
		   updated_at  = CURRENT_TIMESTAMP`,
		m.ID, m.Committee, m.Slot, m.MemberName, m.ProfileID)
	return err
}

func (r *committeeMembersRepo) ListCommitteeMembers(ctx context.Context, committee string) ([]domain.CommitteeMember, error) {
	query := `SELECT id, committee, slot, member_name, profile_id, updated_at FROM committee_members`
	var args []any
	if committee != "" {
		query += ` WHERE committee = ?`
		args = append(args, committee)
	}
	query += ` ORDER BY committee, slot`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CommitteeMember
	for rows.Next() {
		var m domain.CommitteeMember
		if err := rows.Scan(&m.ID, &m.Committee, &m.Slot, &m.MemberName,
			&m.ProfileID, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *committeeMembersRepo) DeleteCommitteeMember(ctx context.Context, committee, slot string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM committee_members WHERE committee = ? AND slot = ?`,
		committee, slot)
	if err != nil {
		return err
	}
	return requireRow(res)
}
