package sqlite

import (
	"context"
	"fmt"

	"github.com/suntowerrwa/portal/internal/portal/domain"
)

type expensesRepo struct {
	db dbtx
}

const expenseColumns = `id, project_id, description, amount, vendor, date,
	committee_approved, general_meeting_approved, approved_by, created_by, created_at`

func scanExpense(row interface{ Scan(...any) error }) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.ProjectID, &e.Description, &e.Amount, &e.Vendor,
		&e.Date, &e.CommitteeApproved, &e.GeneralMeetingApproved,
		&e.ApprovedBy, &e.CreatedBy, &e.CreatedAt)
	return e, err
}

func (r *expensesRepo) GetExpenseByID(ctx context.Context, id string) (domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM project_expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, mapNotFound(err)
	}
	return e, nil
}

func (r *expensesRepo) ListExpenses(ctx context.Context, projectID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM project_expenses`
	var args []any
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *expensesRepo) CreateExpense(ctx context.Context, e domain.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_expenses (id, project_id, description, amount, vendor, date, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, e.Description, e.Amount, e.Vendor, e.Date, e.CreatedBy)
	return mapConflict(err)
}

// SetApproval flips exactly one approval column. The other flag is never
// touched here; the two approvals are granted independently.
func (r *expensesRepo) SetApproval(ctx context.Context, expenseID string, kind domain.ApprovalKind, approvedBy string) error {
	var column string
	switch kind {
	case domain.ApprovalCommittee:
		column = "committee_approved"
	case domain.ApprovalGeneralMeeting:
		column = "general_meeting_approved"
	default:
		return fmt.Errorf("sqlite: unknown approval kind %q", kind)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE project_expenses SET `+column+` = 1, approved_by = ? WHERE id = ?`,
		approvedBy, expenseID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
