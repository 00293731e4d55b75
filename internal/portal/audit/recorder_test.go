package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/store/drivers/sqlite"
	"github.com/suntowerrwa/portal/pkg/httpx"
)

func newRecorder(t *testing.T) *Recorder {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return NewRecorder(st)
}

func TestRecordUsesContextActor(t *testing.T) {
	r := newRecorder(t)

	ctx := context.WithValue(context.Background(), httpx.CtxKeyUserID, "user-1")
	ctx = context.WithValue(ctx, httpx.CtxKeyEmail, "admin@example.com")
	ctx = context.WithValue(ctx, httpx.CtxKeyRemoteIP, "203.0.113.9")

	r.Record(ctx, domain.ActionCreateNotice, "notice", "n-1", map[string]any{"title": "AGM"})

	entries, err := r.Store.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "user-1", entries[0].UserID)
	require.Equal(t, "admin@example.com", entries[0].UserEmail)
	require.Equal(t, "203.0.113.9", entries[0].IPAddress)
	require.Equal(t, "AGM", entries[0].Details["title"])
}

func TestRecordFallsBackToAnonymous(t *testing.T) {
	r := newRecorder(t)
	ctx := context.Background()

	r.Record(ctx, domain.ActionLogin, "session", "", nil)

	entries, err := r.Store.AuditLog().ListAuditEntries(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.AnonymousActor, entries[0].UserEmail)
}

func TestRecordSwallowsStoreErrors(t *testing.T) {
	r := newRecorder(t)
	require.NoError(t, r.Store.Close())

	// Must not panic or error out even though the database is gone.
	r.Record(context.Background(), domain.ActionLogout, "session", "", nil)
}
