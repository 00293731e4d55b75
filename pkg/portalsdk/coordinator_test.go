package portalsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePortal is a minimal in-memory stand-in for the portal API, enough to
// drive the coordinator: login, refresh, session probe, logout, and /v1/me.
type fakePortal struct {
	mu            sync.Mutex
	sessionAlive  bool
	profileMisses int // initial /v1/me calls to fail with 404
	refreshCalls  int
	profile       Profile
}

func (f *fakePortal) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "correct horse battery" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeInvalidCredentials})
			return
		}

		f.mu.Lock()
		f.sessionAlive = true
		f.mu.Unlock()

		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			TokenType:    "Bearer",
			ExpiresIn:    900,
			SessionID:    "sess-1",
		})
	})

	mux.HandleFunc("POST /v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.refreshCalls++
		alive := f.sessionAlive
		f.mu.Unlock()

		if !alive {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeInvalidToken})
			return
		}
		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
			TokenType:    "Bearer",
			ExpiresIn:    900,
			SessionID:    "sess-1",
		})
	})

	mux.HandleFunc("GET /v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		alive := f.sessionAlive
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(SessionStatusResponse{Active: alive})
	})

	mux.HandleFunc("POST /v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.sessionAlive = false
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		miss := f.profileMisses > 0
		if miss {
			f.profileMisses--
		}
		profile := f.profile
		f.mu.Unlock()

		if miss {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeNotFound})
			return
		}
		_ = json.NewEncoder(w).Encode(profile)
	})

	return mux
}

func newFakePortal(t *testing.T) (*fakePortal, *SDKClient) {
	t.Helper()

	fake := &fakePortal{
		profile: Profile{
			ID:          "user-1",
			Email:       "tenant@sun-tower.test",
			DisplayName: "A. Rao",
			Role:        "committee",
			Committees:  []string{"B"},
			Status:      "active",
		},
	}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	return fake, NewSDKClient(srv.URL)
}

func TestCoordinatorLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, client := newFakePortal(t)
	coord := NewCoordinator(client, NewMemoryTokenStore())

	require.NoError(t, coord.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))
	require.True(t, coord.IsLoggedIn())
	require.Equal(t, "A. Rao", coord.Profile().DisplayName)

	select {
	case ev := <-coord.Events():
		require.Equal(t, EventSignedIn, ev.Name)
		require.NotNil(t, ev.Profile)
	default:
		t.Fatal("expected signed_in event")
	}

	t.Run("bad password", func(t *testing.T) {
		other := NewCoordinator(client, nil)
		err := other.Login(ctx, "tenant@sun-tower.test", "wrong")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
		require.False(t, other.IsLoggedIn())
	})
}

func TestCoordinatorProfileRetry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake, client := newFakePortal(t)
	fake.profileMisses = 1

	coord := NewCoordinator(client, nil)
	require.NoError(t, coord.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))
	require.NotNil(t, coord.Profile())
}

func TestCoordinatorRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, client := newFakePortal(t)
	store := NewMemoryTokenStore()

	first := NewCoordinator(client, store)
	require.NoError(t, first.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))

	// A fresh coordinator sharing the store picks the session back up.
	second := NewCoordinator(client, store)
	ok, err := second.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, second.IsLoggedIn())
	require.Equal(t, "tenant@sun-tower.test", second.Profile().Email)

	t.Run("empty store", func(t *testing.T) {
		third := NewCoordinator(client, NewMemoryTokenStore())
		ok, err := third.Restore(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestCoordinatorRestoreDeadSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake, client := newFakePortal(t)
	store := NewMemoryTokenStore()

	first := NewCoordinator(client, store)
	require.NoError(t, first.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))

	// Server-side revocation between runs.
	fake.mu.Lock()
	fake.sessionAlive = false
	fake.mu.Unlock()

	second := NewCoordinator(client, store)
	ok, err := second.Restore(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	_, stillSet, err := store.Load()
	require.NoError(t, err)
	require.False(t, stillSet, "dead session tokens should be cleared")
}

func TestCoordinatorMonitorNoticesRevocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake, client := newFakePortal(t)
	coord := NewCoordinator(client, NewMemoryTokenStore())
	coord.MonitorInterval = 20 * time.Millisecond

	require.NoError(t, coord.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))
	<-coord.Events() // drain signed_in

	coord.StartMonitor()
	defer coord.StopMonitor()

	fake.mu.Lock()
	fake.sessionAlive = false
	fake.mu.Unlock()

	select {
	case ev := <-coord.Events():
		require.Equal(t, EventSessionExpired, ev.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor never reported the dead session")
	}
	require.False(t, coord.IsLoggedIn())
}

func TestCoordinatorLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake, client := newFakePortal(t)
	store := NewMemoryTokenStore()
	coord := NewCoordinator(client, store)

	require.NoError(t, coord.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))
	require.NoError(t, coord.Logout(ctx))
	require.False(t, coord.IsLoggedIn())
	require.Nil(t, coord.Profile())

	fake.mu.Lock()
	alive := fake.sessionAlive
	fake.mu.Unlock()
	require.False(t, alive, "logout should revoke the server session")

	_, set, err := store.Load()
	require.NoError(t, err)
	require.False(t, set)
}

func TestCoordinatorPredicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, client := newFakePortal(t)
	coord := NewCoordinator(client, nil)

	require.False(t, coord.IsAdmin())
	require.False(t, coord.CanEditCommittee("B"))

	require.NoError(t, coord.Login(ctx, "tenant@sun-tower.test", "correct horse battery"))

	require.True(t, coord.IsLoggedIn())
	require.Equal(t, "committee", coord.Role())
	require.True(t, coord.IsCommittee())
	require.False(t, coord.IsAdmin())
	require.False(t, coord.IsResident())
	require.True(t, coord.CanEditCommittee("B"))
	require.False(t, coord.CanEditCommittee("C"))

	// Admins inherit committee powers everywhere.
	coord.mu.Lock()
	coord.profile.Role = "admin"
	coord.mu.Unlock()
	require.True(t, coord.IsAdmin())
	require.True(t, coord.IsCommittee())
	require.True(t, coord.CanEditCommittee("C"))
}

func TestSessionAutoRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fake, client := newFakePortal(t)

	// expiresIn 0 puts the session past its client-side expiry immediately.
	session := client.NewSessionFromTokens("stale-access", "refresh-1", "sess-1", 0)
	fake.mu.Lock()
	fake.sessionAlive = true
	fake.mu.Unlock()

	profile, err := session.GetMyProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "A. Rao", profile.DisplayName)

	fake.mu.Lock()
	calls := fake.refreshCalls
	fake.mu.Unlock()
	require.Equal(t, 1, calls)
	require.Equal(t, "access-2", session.AccessToken())
	require.Equal(t, "refresh-2", session.RefreshToken())
}
