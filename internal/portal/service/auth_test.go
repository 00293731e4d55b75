package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/domain"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	st := newTestStore(t)
	return &AuthService{
		Signer: testSigner(t), Store: st, Audit: newRecorder(st),
		Issuer: "portal-test", AccessTTL: testAccessTTL, RefreshTTL: testRefreshTTL,
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	seedAccount(t, svc.Store, "rao@example.com", domain.RoleCommittee, "A")

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		pair, err := svc.Login(ctx, "rao@example.com", "correct horse battery")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "Bearer", pair.TokenType)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Login(ctx, "rao@example.com", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login is audited", func(t *testing.T) {
		entries, err := svc.Store.AuditLog().ListAuditEntries(ctx,
			domain.AuditFilter{Action: domain.ActionLogin})
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		require.Equal(t, "rao@example.com", entries[0].UserEmail)
	})
}

func TestLoginInactiveAccounts(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	p := seedAccount(t, svc.Store, "off@example.com", domain.RoleResident)
	status := domain.ProfileStatusDisabled
	require.NoError(t, svc.Store.Profiles().UpdateProfile(ctx, p.ID,
		domain.ProfileUpdate{Status: &status}))

	_, err := svc.Login(ctx, "off@example.com", "correct horse battery")
	require.ErrorIs(t, err, ErrAccountNotActive)
}

func TestRefreshRotation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	seedAccount(t, svc.Store, "rao@example.com", domain.RoleResident)

	pair, err := svc.Login(ctx, "rao@example.com", "correct horse battery")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	require.Equal(t, pair.SessionID, next.SessionID)

	t.Run("old refresh token is dead after rotation", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage refresh tokens are rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestLogoutAndValidate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	seedAccount(t, svc.Store, "rao@example.com", domain.RoleResident)

	pair, err := svc.Login(ctx, "rao@example.com", "correct horse battery")
	require.NoError(t, err)

	alive, err := svc.ValidateSession(ctx, pair.SessionID)
	require.NoError(t, err)
	require.True(t, alive)

	require.NoError(t, svc.Logout(ctx, pair.SessionID))

	alive, err = svc.ValidateSession(ctx, pair.SessionID)
	require.NoError(t, err)
	require.False(t, alive)

	t.Run("revoked session cannot refresh", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("unknown session ids are just not alive", func(t *testing.T) {
		alive, err := svc.ValidateSession(ctx, "nope")
		require.NoError(t, err)
		require.False(t, alive)
	})
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	p := seedAccount(t, svc.Store, "rao@example.com", domain.RoleResident)

	pair, err := svc.Login(ctx, "rao@example.com", "correct horse battery")
	require.NoError(t, err)

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := svc.ChangePassword(ctx, p.ID, "wrong", "new password 123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	require.NoError(t, svc.ChangePassword(ctx, p.ID, "correct horse battery", "new password 123"))

	t.Run("all sessions are revoked", func(t *testing.T) {
		alive, err := svc.ValidateSession(ctx, pair.SessionID)
		require.NoError(t, err)
		require.False(t, alive)
	})

	t.Run("only the new password logs in", func(t *testing.T) {
		_, err := svc.Login(ctx, "rao@example.com", "correct horse battery")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "rao@example.com", "new password 123")
		require.NoError(t, err)
	})
}
