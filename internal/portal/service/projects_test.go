package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/domain"
)

func TestProjectCommitteeScoping(t *testing.T) {
	st := newTestStore(t)
	svc := &ProjectService{Store: st, Audit: newRecorder(st)}

	admin := seedAccount(t, st, "admin@example.com", domain.RoleAdmin)
	memberA := seedAccount(t, st, "a@example.com", domain.RoleCommittee, "A")
	memberC := seedAccount(t, st, "c@example.com", domain.RoleCommittee, "C")
	resident := seedAccount(t, st, "r@example.com", domain.RoleResident)

	t.Run("committee member creates within own committee", func(t *testing.T) {
		p, err := svc.Create(asCaller(memberA), domain.Project{Name: "Garden", Committee: "A"})
		require.NoError(t, err)
		require.Equal(t, domain.ProjectStatusPlanned, p.Status)
		require.Equal(t, memberA.ID, p.CreatedBy)
	})

	t.Run("but not in another committee", func(t *testing.T) {
		_, err := svc.Create(asCaller(memberA), domain.Project{Name: "Roof", Committee: "C"})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("residents cannot create at all", func(t *testing.T) {
		_, err := svc.Create(asCaller(resident), domain.Project{Name: "Pool", Committee: "A"})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admins create anywhere", func(t *testing.T) {
		_, err := svc.Create(asCaller(admin), domain.Project{Name: "CCTV", Committee: "G"})
		require.NoError(t, err)
	})

	t.Run("unknown committee codes are rejected", func(t *testing.T) {
		_, err := svc.Create(asCaller(admin), domain.Project{Name: "X", Committee: "Z"})
		require.ErrorIs(t, err, ErrInvalidCommittee)
	})

	t.Run("committee filter on list", func(t *testing.T) {
		all, err := svc.List(asCaller(resident), "")
		require.NoError(t, err)
		require.Len(t, all, 2)

		onlyA, err := svc.List(asCaller(resident), "A")
		require.NoError(t, err)
		require.Len(t, onlyA, 1)
		require.Equal(t, "Garden", onlyA[0].Name)
	})

	t.Run("updates follow the same scoping", func(t *testing.T) {
		onlyA, err := svc.List(asCaller(resident), "A")
		require.NoError(t, err)
		progress := 40

		_, err = svc.Update(asCaller(memberC), onlyA[0].ID, domain.ProjectPatch{Progress: &progress})
		require.ErrorIs(t, err, ErrForbidden)

		got, err := svc.Update(asCaller(memberA), onlyA[0].ID, domain.ProjectPatch{Progress: &progress})
		require.NoError(t, err)
		require.Equal(t, 40, got.Progress)
	})
}

func TestProjectUpdatesFeed(t *testing.T) {
	st := newTestStore(t)
	svc := &ProjectService{Store: st, Audit: newRecorder(st)}
	member := seedAccount(t, st, "a@example.com", domain.RoleCommittee, "A")

	p, err := svc.Create(asCaller(member), domain.Project{Name: "Garden", Committee: "A"})
	require.NoError(t, err)

	u, err := svc.AddUpdate(asCaller(member), p.ID, "Soil delivered")
	require.NoError(t, err)
	require.Equal(t, member.ID, u.AuthorID)
	require.Equal(t, member.DisplayName, u.AuthorName)

	feed, err := svc.ListUpdates(asCaller(member), p.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "Soil delivered", feed[0].UpdateText)
}
