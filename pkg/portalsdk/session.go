package portalsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshBuffer is subtracted from the reported token lifetime so the
// session refreshes before the server-side expiry.
const refreshBuffer = 30 * time.Second

// Session represents an authenticated portal session with automatic token
// refresh. Sessions are safe for concurrent use.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	sessionID    string
	expiresAt    time.Time
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, tok *TokenResponse) *Session {
	return &Session{
		client:       client,
		accessToken:  tok.AccessToken,
		refreshToken: tok.RefreshToken,
		sessionID:    tok.SessionID,
		expiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshBuffer),
	}
}

// getValidToken returns a valid access token, refreshing first if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	tok, err := s.client.refreshGrant(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tok.AccessToken
	s.refreshToken = tok.RefreshToken
	s.sessionID = tok.SessionID
	s.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshBuffer)

	return s.accessToken, nil
}

// Refresh forces a token rotation regardless of expiry. Callers that want
// the lazy path should just issue requests and let the session refresh on
// demand.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}

	tok, err := s.client.refreshGrant(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tok.AccessToken
	s.refreshToken = tok.RefreshToken
	s.sessionID = tok.SessionID
	s.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshBuffer)
	return nil
}

// refreshGrant exchanges a refresh token for a fresh token pair. The old
// refresh token is dead after this call.
func (c *SDKClient) refreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	body, headers, err := jsonBody(RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", body, headers)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// SessionID returns the server-side session identifier.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// ExpiresAt returns the client-side estimate of the access token expiry.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// CheckAlive probes the server-side session. A false result means the
// session was revoked, for example by an admin password reset.
func (s *Session) CheckAlive(ctx context.Context) (bool, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/session", nil, nil)
	if err != nil {
		return false, err
	}

	var status SessionStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return false, err
	}
	return status.Active, nil
}

// GetMyProfile retrieves the caller's own profile.
func (s *Session) GetMyProfile(ctx context.Context) (*Profile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangePassword swaps the caller's password. The server revokes every
// session for the account, including this one, so callers must log in again.
func (s *Session) ChangePassword(ctx context.Context, current, newPassword string) error {
	body, headers, err := jsonBody(ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/change-password", body, headers)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Logout revokes this session on the server.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
