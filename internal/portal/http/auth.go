package http

import (
	"net/http"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// AuthHandler serves the /v1/auth endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchanges email and password for an access token and a refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	portalsdk.TokenResponse
//	@Failure		401		{object}	portalsdk.ErrorResponse
//	@Failure		403		{object}	portalsdk.ErrorResponse	"account disabled or pending"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		portalsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn),
		SessionID:    pair.SessionID,
	})
}

// HandleRefresh rotates the refresh token and mints a new access token.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		portalsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn),
		SessionID:    pair.SessionID,
	})
}

// HandleSession reports whether the caller's session is still alive. Clients
// poll this to notice admin revocations before the access token expires.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SIDFromCtx(r.Context())
	if sid == "" {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	active, err := h.AuthService.ValidateSession(r.Context(), sid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.SessionStatusResponse{Active: active})
}

// HandleLogout revokes the caller's session.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sid := httpx.SIDFromCtx(r.Context())
	if sid == "" {
		portalsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.AuthService.Logout(r.Context(), sid); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangePassword swaps the caller's password and revokes all their
// sessions, including the one making this request.
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || len(req.NewPassword) < 8 {
		portalsdk.ErrInvalidRequest.WithDescription("new password must be at least 8 characters").WriteError(w)
		return
	}

	userID := httpx.UserIDFromCtx(r.Context())
	if err := h.AuthService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
