package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/domain"
)

func TestExpenseApprovals(t *testing.T) {
	st := newTestStore(t)
	projects := &ProjectService{Store: st, Audit: newRecorder(st)}
	expenses := &ExpenseService{Store: st, Audit: newRecorder(st)}

	admin := seedAccount(t, st, "admin@example.com", domain.RoleAdmin)
	member := seedAccount(t, st, "member@example.com", domain.RoleCommittee, "B")

	proj, err := projects.Create(asCaller(member), domain.Project{
		Name: "Lobby repaint", Committee: "B",
	})
	require.NoError(t, err)

	exp, err := expenses.Add(asCaller(member), domain.Expense{
		ProjectID:   proj.ID,
		Description: "Paint and labour",
		Amount:      42000,
		Vendor:      "Sharp Decor",
		Date:        "2026-08-01",
	})
	require.NoError(t, err)
	require.False(t, exp.CommitteeApproved)
	require.False(t, exp.GeneralMeetingApproved)

	t.Run("committee members cannot approve", func(t *testing.T) {
		_, err := expenses.Approve(asCaller(member), exp.ID, domain.ApprovalCommittee)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("committee approval sets only its flag", func(t *testing.T) {
		got, err := expenses.Approve(asCaller(admin), exp.ID, domain.ApprovalCommittee)
		require.NoError(t, err)
		require.True(t, got.CommitteeApproved)
		require.False(t, got.GeneralMeetingApproved)
		require.Equal(t, "admin@example.com", got.ApprovedBy)
	})

	t.Run("general meeting approval is independent", func(t *testing.T) {
		got, err := expenses.Approve(asCaller(admin), exp.ID, domain.ApprovalGeneralMeeting)
		require.NoError(t, err)
		require.True(t, got.CommitteeApproved)
		require.True(t, got.GeneralMeetingApproved)
	})

	t.Run("bogus approval kinds are rejected", func(t *testing.T) {
		_, err := expenses.Approve(asCaller(admin), exp.ID, domain.ApprovalKind("board"))
		require.ErrorIs(t, err, ErrInvalidApprovalKind)
	})

	t.Run("client-sent approval flags are ignored on create", func(t *testing.T) {
		sneaky, err := expenses.Add(asCaller(member), domain.Expense{
			ProjectID:         proj.ID,
			Description:       "Pre-approved?",
			Amount:            100,
			CommitteeApproved: true,
		})
		require.NoError(t, err)
		require.False(t, sneaky.CommitteeApproved)
	})
}

func TestExpenseCommitteeScoping(t *testing.T) {
	st := newTestStore(t)
	projects := &ProjectService{Store: st, Audit: newRecorder(st)}
	expenses := &ExpenseService{Store: st, Audit: newRecorder(st)}

	admin := seedAccount(t, st, "admin@example.com", domain.RoleAdmin)
	outsider := seedAccount(t, st, "c@example.com", domain.RoleCommittee, "C")

	proj, err := projects.Create(asCaller(admin), domain.Project{Name: "Gym", Committee: "A"})
	require.NoError(t, err)

	_, err = expenses.Add(asCaller(outsider), domain.Expense{
		ProjectID: proj.ID, Description: "Treadmill", Amount: 90000,
	})
	require.ErrorIs(t, err, ErrForbidden)
}
