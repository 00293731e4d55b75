package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/internal/portal/store/drivers/sqlite"
	"github.com/suntowerrwa/portal/pkg/cryptox"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/idx"
	"github.com/suntowerrwa/portal/pkg/jwtx"
)

const (
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
)

func testSigner(t *testing.T) jwtx.Signer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return jwtx.NewSignerFromKey("test-key", priv)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newRecorder(st store.Store) *audit.Recorder {
	return audit.NewRecorder(st)
}

// seedAccount creates a user+profile pair with the given role and returns
// the profile.
func seedAccount(t *testing.T, st store.Store, email, role string, committees ...string) domain.Profile {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword("correct horse battery")
	require.NoError(t, err)

	u := domain.User{ID: idx.New().String(), Email: email, PasswordHash: hash}
	require.NoError(t, st.Users().CreateUser(ctx, u))

	p := domain.Profile{
		ID:          u.ID,
		Email:       email,
		DisplayName: email,
		Role:        role,
		Committees:  committees,
		Status:      domain.ProfileStatusActive,
	}
	require.NoError(t, st.Profiles().CreateProfile(ctx, p))
	return p
}

// asCaller returns a context authenticated as the given profile.
func asCaller(p domain.Profile) context.Context {
	ctx := context.WithValue(context.Background(), httpx.CtxKeyUserID, p.ID)
	return context.WithValue(ctx, httpx.CtxKeyEmail, p.Email)
}
