package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/domain"
)

func TestProfileSelfServiceStripsAdminFields(t *testing.T) {
	st := newTestStore(t)
	svc := &ProfileService{Store: st, Audit: newRecorder(st)}
	resident := seedAccount(t, st, "rao@example.com", domain.RoleResident)

	mobile := "9876543210"
	role := domain.RoleAdmin // attempted escalation
	got, err := svc.Update(asCaller(resident), resident.ID, domain.ProfileUpdate{
		Mobile: &mobile,
		Role:   &role,
	})
	require.NoError(t, err)
	require.Equal(t, "9876543210", got.Mobile)
	require.Equal(t, domain.RoleResident, got.Role)
}

func TestProfileEditsAreScopedToSelf(t *testing.T) {
	st := newTestStore(t)
	svc := &ProfileService{Store: st, Audit: newRecorder(st)}

	admin := seedAccount(t, st, "admin@example.com", domain.RoleAdmin)
	a := seedAccount(t, st, "a@example.com", domain.RoleResident)
	b := seedAccount(t, st, "b@example.com", domain.RoleResident)

	name := "Hacked"
	_, err := svc.Update(asCaller(a), b.ID, domain.ProfileUpdate{DisplayName: &name})
	require.ErrorIs(t, err, ErrForbidden)

	t.Run("admins can edit anyone including admin-only fields", func(t *testing.T) {
		role := domain.RoleCommittee
		committees := []string{"B"}
		got, err := svc.Update(asCaller(admin), b.ID, domain.ProfileUpdate{
			Role: &role, Committees: &committees,
		})
		require.NoError(t, err)
		require.Equal(t, domain.RoleCommittee, got.Role)
		require.Equal(t, []string{"B"}, got.Committees)
	})
}

func TestCommitteeBoardAssembly(t *testing.T) {
	st := newTestStore(t)
	svc := &CommitteeService{Store: st}
	member := seedAccount(t, st, "a@example.com", domain.RoleCommittee, "A")

	seats := []domain.CommitteeMember{
		{Committee: "A", Slot: domain.SlotConvenor, MemberName: "R. Iyer"},
		{Committee: "A", Slot: domain.SlotCommitteeMember, MemberName: "S. Menon"},
		{Committee: "A", Slot: domain.SlotResident2, MemberName: "K. Das"},
	}
	for _, seat := range seats {
		require.NoError(t, svc.UpsertSeat(asCaller(member), seat))
	}

	board, err := svc.Board(asCaller(member), "A")
	require.NoError(t, err)
	require.Equal(t, "R. Iyer", board.Convenor)
	require.Equal(t, "S. Menon", board.CommitteeMember)
	require.Equal(t, [3]string{"", "K. Das", ""}, board.Residents)

	t.Run("seats outside own committees are refused", func(t *testing.T) {
		err := svc.UpsertSeat(asCaller(member), domain.CommitteeMember{
			Committee: "B", Slot: domain.SlotConvenor, MemberName: "X",
		})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid slots are refused", func(t *testing.T) {
		err := svc.UpsertSeat(asCaller(member), domain.CommitteeMember{
			Committee: "A", Slot: "president", MemberName: "X",
		})
		require.ErrorIs(t, err, ErrInvalidCommittee)
	})
}
