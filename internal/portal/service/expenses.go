package service

import (
	"context"
	"errors"

	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

var ErrInvalidApprovalKind = errors.New("invalid_approval_kind")

// ExpenseService books expenses against projects and tracks the two
// independent approvals each one needs: committee sign-off and general
// meeting sign-off.
type ExpenseService struct {
	Store store.Store
	Audit *audit.Recorder
}

func (s *ExpenseService) List(ctx context.Context, projectID string) ([]domain.Expense, error) {
	return s.Store.Expenses().ListExpenses(ctx, projectID)
}

func (s *ExpenseService) Add(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	project, err := s.Store.Projects().GetProjectByID(ctx, e.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Expense{}, ErrNotFound
		}
		return domain.Expense{}, err
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Expense{}, err
	}
	if !canEditCommittee(caller, project.Committee) {
		return domain.Expense{}, ErrForbidden
	}

	e.ID = idx.New().String()
	e.CreatedBy = caller.Email
	// New expenses always start unapproved regardless of what the caller sent.
	e.CommitteeApproved = false
	e.GeneralMeetingApproved = false
	e.ApprovedBy = ""

	if err := s.Store.Expenses().CreateExpense(ctx, e); err != nil {
		return domain.Expense{}, err
	}

	s.Audit.Record(ctx, domain.ActionAddExpense, "project_expense", e.ID,
		map[string]any{"project_id": e.ProjectID, "amount": e.Amount})
	return s.Store.Expenses().GetExpenseByID(ctx, e.ID)
}

// Approve grants one approval kind. Approvals only ever go from unset to
// set; there is no revocation, and granting one kind never clears the other.
func (s *ExpenseService) Approve(ctx context.Context, expenseID string, kind domain.ApprovalKind) (domain.Expense, error) {
	if !domain.ValidApprovalKind(kind) {
		return domain.Expense{}, ErrInvalidApprovalKind
	}

	caller, err := callerProfile(ctx, s.Store)
	if err != nil {
		return domain.Expense{}, err
	}
	if caller.Role != domain.RoleAdmin {
		return domain.Expense{}, ErrForbidden
	}

	if err := s.Store.Expenses().SetApproval(ctx, expenseID, kind, caller.Email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Expense{}, ErrNotFound
		}
		return domain.Expense{}, err
	}

	s.Audit.Record(ctx, domain.ActionApproveExpense, "project_expense", expenseID,
		map[string]any{"kind": string(kind)})
	return s.Store.Expenses().GetExpenseByID(ctx, expenseID)
}
