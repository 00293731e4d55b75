package portalsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the portal API. It provides access to the
// unauthenticated endpoints and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new portal client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for an authenticated session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	body, headers, err := jsonBody(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", body, headers)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tok), nil
}

// NewSessionFromTokens creates a session from previously stored tokens, for
// restoring state across process restarts. The session still auto-refreshes
// when the access token expires; an expiresIn of 0 forces a refresh on first
// use.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken, sessionID string, expiresIn int) *Session {
	expiresAt := time.Now().Add(time.Duration(expiresIn)*time.Second - refreshBuffer)

	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		sessionID:    sessionID,
		expiresAt:    expiresAt,
	}
}

// SubmitRegistration files a new registration request. This endpoint needs no
// authentication.
func (c *SDKClient) SubmitRegistration(ctx context.Context, req RegistrationRequest) (*Registration, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/registrations", body, headers)
	if err != nil {
		return nil, err
	}

	var reg Registration
	if err := decodeJSON(resp, &reg, http.StatusCreated); err != nil {
		return nil, err
	}

	return &reg, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
