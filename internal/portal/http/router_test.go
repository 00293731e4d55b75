package http

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suntowerrwa/portal/internal/portal/audit"
	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/internal/portal/store/drivers/sqlite"
	"github.com/suntowerrwa/portal/pkg/cryptox"
	"github.com/suntowerrwa/portal/pkg/idx"
	"github.com/suntowerrwa/portal/pkg/jwtx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

const testIssuer = "https://portal.test"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	srv   *httptest.Server
	store store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// File-backed DB; an in-memory DSN gives every pooled connection its
	// own empty database.
	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer := jwtx.NewSignerFromKey("test-key", priv)

	keys := jwtx.NewKeySet()
	keys.Add(signer.KID(), signer.PublicKey())
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer)

	rec := audit.NewRecorder(st)

	r := NewRouter(keys, verifier, "test", st, testLogger())
	r.AuthService = &service.AuthService{
		Signer:     signer,
		Store:      st,
		Audit:      rec,
		Issuer:     testIssuer,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	r.AdminService = &service.AdminService{Store: st, Audit: rec}
	r.ProfileService = &service.ProfileService{Store: st, Audit: rec}
	r.RegistrationService = &service.RegistrationService{Store: st}
	r.ProjectService = &service.ProjectService{Store: st, Audit: rec}
	r.ExpenseService = &service.ExpenseService{Store: st, Audit: rec}
	r.NoticeService = &service.NoticeService{Store: st, Audit: rec}
	r.MessageService = &service.MessageService{Store: st}
	r.CommitteeService = &service.CommitteeService{Store: st}
	r.AuditService = &service.AuditService{Store: st}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: st}
}

func (e *testEnv) seedAccount(t *testing.T, email, role string, committees ...string) domain.Profile {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword("correct horse battery")
	require.NoError(t, err)

	u := domain.User{ID: idx.New().String(), Email: email, PasswordHash: hash}
	require.NoError(t, e.store.Users().CreateUser(ctx, u))

	p := domain.Profile{
		ID:          u.ID,
		Email:       email,
		DisplayName: email,
		Role:        role,
		Committees:  committees,
		Status:      domain.ProfileStatusActive,
	}
	require.NoError(t, e.store.Profiles().CreateProfile(ctx, p))
	return p
}

// do sends a JSON request with an optional bearer token and decodes the
// response body into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp
}

func (e *testEnv) login(t *testing.T, email, password string) portalsdk.TokenResponse {
	t.Helper()

	var tok portalsdk.TokenResponse
	resp := e.do(t, http.MethodPost, "/v1/auth/login", "",
		portalsdk.LoginRequest{Email: email, Password: password}, &tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, tok.AccessToken)
	return tok
}

func TestRouterApproveResidentFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "secretary@sun-tower.test", domain.RoleAdmin)
	admin := env.login(t, "secretary@sun-tower.test", "correct horse battery")

	// Public signup, no token.
	var reg portalsdk.Registration
	resp := env.do(t, http.MethodPost, "/v1/registrations", "", portalsdk.RegistrationRequest{
		OwnerName: "A. Rao",
		FlatNo:    "12B",
		Email:     "a.rao@example.com",
	}, &reg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, domain.RegistrationPending, reg.Status)

	t.Run("queue requires admin scope", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/registrations?status=pending", "", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var queue []portalsdk.Registration
		resp = env.do(t, http.MethodGet, "/v1/registrations?status=pending", admin.AccessToken, nil, &queue)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, queue, 1)
	})

	var approved portalsdk.ApproveResidentResponse
	resp = env.do(t, http.MethodPost, "/v1/admin/approve-resident", admin.AccessToken,
		portalsdk.ApproveResidentRequest{RequestID: reg.ID}, &approved)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, approved.Success)
	require.Equal(t, "a.rao@example.com", approved.Email)
	require.Equal(t, "12B", approved.FlatNo)
	require.Len(t, approved.TempPassword, 12)

	t.Run("temp password works", func(t *testing.T) {
		tok := env.login(t, "a.rao@example.com", approved.TempPassword)

		var me portalsdk.Profile
		resp := env.do(t, http.MethodGet, "/v1/me", tok.AccessToken, nil, &me)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "A. Rao", me.DisplayName)
		require.Equal(t, domain.RoleResident, me.Role)
	})

	t.Run("replay rejected", func(t *testing.T) {
		var apiErr portalsdk.ErrorResponse
		resp := env.do(t, http.MethodPost, "/v1/admin/approve-resident", admin.AccessToken,
			portalsdk.ApproveResidentRequest{RequestID: reg.ID}, &apiErr)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, portalsdk.ErrorCodeAlreadyProcessed, apiErr.Error)
	})

	t.Run("resident token lacks admin scope", func(t *testing.T) {
		tok := env.login(t, "a.rao@example.com", approved.TempPassword)
		resp := env.do(t, http.MethodPost, "/v1/admin/approve-resident", tok.AccessToken,
			portalsdk.ApproveResidentRequest{RequestID: reg.ID}, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRouterResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "secretary@sun-tower.test", domain.RoleAdmin)
	env.seedAccount(t, "tenant@sun-tower.test", domain.RoleResident)
	admin := env.login(t, "secretary@sun-tower.test", "correct horse battery")

	var out portalsdk.ResetPasswordResponse
	resp := env.do(t, http.MethodPost, "/v1/admin/reset-password", admin.AccessToken,
		portalsdk.ResetPasswordRequest{Email: "tenant@sun-tower.test"}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, out.Success)
	require.Len(t, out.NewPassword, 12)

	env.login(t, "tenant@sun-tower.test", out.NewPassword)

	t.Run("unknown email", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/v1/admin/reset-password", admin.AccessToken,
			portalsdk.ResetPasswordRequest{Email: "nobody@sun-tower.test"}, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouterSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "tenant@sun-tower.test", domain.RoleResident)
	tok := env.login(t, "tenant@sun-tower.test", "correct horse battery")

	var status portalsdk.SessionStatusResponse
	resp := env.do(t, http.MethodGet, "/v1/auth/session", tok.AccessToken, nil, &status)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, status.Active)

	resp = env.do(t, http.MethodPost, "/v1/auth/logout", tok.AccessToken, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The access token is still cryptographically valid, but the probe
	// reports the revoked session so clients can drop their state.
	resp = env.do(t, http.MethodGet, "/v1/auth/session", tok.AccessToken, nil, &status)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.False(t, status.Active)
}

func TestRouterAuditTrail(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "secretary@sun-tower.test", domain.RoleAdmin)
	env.seedAccount(t, "tenant@sun-tower.test", domain.RoleResident)
	admin := env.login(t, "secretary@sun-tower.test", "correct horse battery")
	resident := env.login(t, "tenant@sun-tower.test", "correct horse battery")

	var entries []portalsdk.AuditEntry
	resp := env.do(t, http.MethodGet,
		fmt.Sprintf("/v1/audit?action=%s&email=secretary", domain.ActionLogin),
		admin.AccessToken, nil, &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, entries, 1)
	require.Equal(t, "secretary@sun-tower.test", entries[0].UserEmail)

	t.Run("residents cannot read the trail", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/v1/audit", resident.AccessToken, nil, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRouterHealthProbes(t *testing.T) {
	env := newTestEnv(t)

	var health portalsdk.HealthResponse
	resp := env.do(t, http.MethodGet, "/livez", "", nil, &health)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", health.Status)

	resp = env.do(t, http.MethodGet, "/readyz", "", nil, &health)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
