package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	// A file-backed database: in-memory sqlite gives every pooled
	// connection its own empty database.
	s, err := NewStore(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUsersRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "rao@example.com",
		PasswordHash: "argon2:dummy",
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, got.Email)

		got, err = s.Users().GetUserByEmail(ctx, "rao@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := domain.User{ID: idx.New().String(), Email: "rao@example.com", PasswordHash: "x"}
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("password hash update", func(t *testing.T) {
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "argon2:new"))
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "argon2:new", got.PasswordHash)
	})
}

func TestSessionsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{ID: idx.New().String(), Email: "a@example.com", PasswordHash: "h"}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: "hash-1",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	t.Run("lookup by token hash", func(t *testing.T) {
		got, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-1")
		require.NoError(t, err)
		require.Equal(t, sess.ID, got.ID)
		require.False(t, got.Revoked)
	})

	t.Run("rotation swaps the hash", func(t *testing.T) {
		newExpiry := time.Now().Add(2 * time.Hour).UTC()
		require.NoError(t, s.Sessions().RotateSessionToken(ctx, sess.ID, "hash-2", newExpiry))

		_, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-2")
		require.NoError(t, err)
		require.Equal(t, sess.ID, got.ID)
	})

	t.Run("revoke all kills every session for the user", func(t *testing.T) {
		require.NoError(t, s.Sessions().RevokeAllUserSessions(ctx, u.ID))
		got, err := s.Sessions().GetSessionByID(ctx, sess.ID)
		require.NoError(t, err)
		require.True(t, got.Revoked)
	})

	t.Run("revoked sessions cannot be rotated", func(t *testing.T) {
		err := s.Sessions().RotateSessionToken(ctx, sess.ID, "hash-3", time.Now().Add(time.Hour))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting the user cascades", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
		_, err := s.Sessions().GetSessionByID(ctx, sess.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestProfilesRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{ID: idx.New().String(), Email: "p@example.com", PasswordHash: "h"}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	p := domain.Profile{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: "A. Rao",
		FlatNo:      "12B",
		Role:        domain.RoleCommittee,
		Committees:  []string{"A", "C"},
		Status:      domain.ProfileStatusActive,
	}
	require.NoError(t, s.Profiles().CreateProfile(ctx, p))

	t.Run("committees survive the round trip", func(t *testing.T) {
		got, err := s.Profiles().GetProfileByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"A", "C"}, got.Committees)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		mobile := "9876543210"
		require.NoError(t, s.Profiles().UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Mobile: &mobile}))

		got, err := s.Profiles().GetProfileByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "9876543210", got.Mobile)
		require.Equal(t, "A. Rao", got.DisplayName)
		require.Equal(t, domain.RoleCommittee, got.Role)
	})

	t.Run("updating a missing profile reports not found", func(t *testing.T) {
		name := "x"
		err := s.Profiles().UpdateProfile(ctx, "missing", domain.ProfileUpdate{DisplayName: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestExpensesRepoApprovals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	proj := domain.Project{ID: idx.New().String(), Name: "Lobby repaint", Committee: "B"}
	require.NoError(t, s.Projects().CreateProject(ctx, proj))

	e := domain.Expense{
		ID:          idx.New().String(),
		ProjectID:   proj.ID,
		Description: "Paint and labour",
		Amount:      42000,
		Vendor:      "Sharp Decor",
		Date:        "2026-08-01",
		CreatedBy:   "treasurer@example.com",
	}
	require.NoError(t, s.Expenses().CreateExpense(ctx, e))

	t.Run("committee approval leaves the other flag untouched", func(t *testing.T) {
		require.NoError(t, s.Expenses().SetApproval(ctx, e.ID, domain.ApprovalCommittee, "admin@example.com"))

		got, err := s.Expenses().GetExpenseByID(ctx, e.ID)
		require.NoError(t, err)
		require.True(t, got.CommitteeApproved)
		require.False(t, got.GeneralMeetingApproved)
		require.Equal(t, "admin@example.com", got.ApprovedBy)
	})

	t.Run("general meeting approval is independent", func(t *testing.T) {
		require.NoError(t, s.Expenses().SetApproval(ctx, e.ID, domain.ApprovalGeneralMeeting, "secretary@example.com"))

		got, err := s.Expenses().GetExpenseByID(ctx, e.ID)
		require.NoError(t, err)
		require.True(t, got.CommitteeApproved)
		require.True(t, got.GeneralMeetingApproved)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		err := s.Expenses().SetApproval(ctx, e.ID, domain.ApprovalKind("board"), "x")
		require.Error(t, err)
	})
}

func TestCommitteeMembersUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := domain.CommitteeMember{
		ID:         idx.New().String(),
		Committee:  "A",
		Slot:       domain.SlotConvenor,
		MemberName: "R. Iyer",
	}
	require.NoError(t, s.CommitteeMembers().UpsertCommitteeMember(ctx, first))

	// Same seat, new holder. Must replace, not duplicate.
	second := first
	second.ID = idx.New().String()
	second.MemberName = "S. Menon"
	require.NoError(t, s.CommitteeMembers().UpsertCommitteeMember(ctx, second))

	members, err := s.CommitteeMembers().ListCommitteeMembers(ctx, "A")
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "S. Menon", members[0].MemberName)
	require.Equal(t, first.ID, members[0].ID) // existing seat keeps its id
}

func TestRegistrationsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reg := domain.RegistrationRequest{
		ID:        idx.New().String(),
		OwnerName: "A. Rao",
		FlatNo:    "12B",
		Mobile:    "9876543210",
		Email:     "rao@example.com",
	}
	require.NoError(t, s.Registrations().CreateRegistration(ctx, reg))

	t.Run("new requests are pending", func(t *testing.T) {
		got, err := s.Registrations().GetRegistrationByID(ctx, reg.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RegistrationPending, got.Status)
		require.Nil(t, got.Permissions)
		require.Nil(t, got.ReviewDate)
	})

	t.Run("approval records reviewer and permissions", func(t *testing.T) {
		perms := domain.DefaultPermissions()
		require.NoError(t, s.Registrations().UpdateRegistrationStatus(
			ctx, reg.ID, domain.RegistrationApproved, "admin@example.com", &perms))

		got, err := s.Registrations().GetRegistrationByID(ctx, reg.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RegistrationApproved, got.Status)
		require.Equal(t, "admin@example.com", got.ReviewedBy)
		require.NotNil(t, got.ReviewDate)
		require.NotNil(t, got.Permissions)
		require.True(t, got.Permissions.Read)
		require.False(t, got.Permissions.Write)
	})

	t.Run("status filter", func(t *testing.T) {
		pending, err := s.Registrations().ListRegistrations(ctx, domain.RegistrationPending)
		require.NoError(t, err)
		require.Empty(t, pending)

		approved, err := s.Registrations().ListRegistrations(ctx, domain.RegistrationApproved)
		require.NoError(t, err)
		require.Len(t, approved, 1)
	})
}

func TestAuditLogFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []domain.AuditEntry{
		{ID: idx.New().String(), UserEmail: "admin@example.com", Action: domain.ActionLogin},
		{ID: idx.New().String(), UserEmail: "admin@example.com", Action: domain.ActionApproveResident,
			ResourceType: "registration_request", Details: map[string]any{"flat_no": "12B"}},
		{ID: idx.New().String(), UserEmail: "rao@example.com", Action: domain.ActionLogin},
	}
	for _, e := range entries {
		require.NoError(t, s.AuditLog().CreateAuditEntry(ctx, e))
	}

	t.Run("action filter", func(t *testing.T) {
		got, err := s.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{Action: domain.ActionLogin})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("email substring is case-insensitive", func(t *testing.T) {
		got, err := s.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{UserEmail: "ADMIN"})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("filters compose", func(t *testing.T) {
		got, err := s.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{
			Action:    domain.ActionLogin,
			UserEmail: "rao",
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("details survive the round trip", func(t *testing.T) {
		got, err := s.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{Action: domain.ActionApproveResident})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "12B", got[0].Details["flat_no"])
	})

	t.Run("limit caps the result", func(t *testing.T) {
		got, err := s.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := domain.User{ID: idx.New().String(), Email: "tx@example.com", PasswordHash: "h"}

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
