package http

import (
	"net/http"
	"strings"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// AdminHandler serves the privileged /v1/admin endpoints. The scope
// middleware in front of these routes is only a first gate; the service
// re-reads the caller's profile row and requires the admin role there.
type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleApproveResident godoc
//
//	@Summary		Approve a registration request
//	@Description	Creates a portal account for a pending registration request and returns a temporary password.
//	@Description	Replaying the call for an already-processed request fails with 400.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		portalsdk.ApproveResidentRequest	true	"Request id and optional permissions"
//	@Success		200		{object}	portalsdk.ApproveResidentResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse	"malformed body or already processed"
//	@Failure		401		{object}	portalsdk.ErrorResponse
//	@Failure		403		{object}	portalsdk.ErrorResponse	"caller is not an admin"
//	@Failure		404		{object}	portalsdk.ErrorResponse	"no such request"
//	@Router			/v1/admin/approve-resident [post].
func (h *AdminHandler) HandleApproveResident(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ApproveResidentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RequestID == "" {
		portalsdk.ErrInvalidRequest.WithDescription("request_id is required").WriteError(w)
		return
	}

	var perms *domain.Permissions
	if req.Permissions != nil {
		perms = &domain.Permissions{Read: req.Permissions.Read, Write: req.Permissions.Write}
	}

	res, err := h.AdminService.ApproveResident(r.Context(), req.RequestID, perms)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.ApproveResidentResponse{
		Success:      true,
		UserID:       res.UserID,
		Email:        res.Email,
		Name:         res.Name,
		FlatNo:       res.FlatNo,
		TempPassword: res.TempPassword,
	})
}

// HandleRejectResident closes a pending request without creating an account.
func (h *AdminHandler) HandleRejectResident(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.AdminService.RejectResident(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResetPassword godoc
//
//	@Summary		Reset a member's password
//	@Description	Replaces the password with a fresh temporary one and revokes all of the member's sessions.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		portalsdk.ResetPasswordRequest	true	"Target user id or email"
//	@Success		200		{object}	portalsdk.ResetPasswordResponse
//	@Failure		401		{object}	portalsdk.ErrorResponse
//	@Failure		403		{object}	portalsdk.ErrorResponse	"caller is not an admin"
//	@Failure		404		{object}	portalsdk.ErrorResponse	"no account with that email"
//	@Router			/v1/admin/reset-password [post].
func (h *AdminHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" && strings.TrimSpace(req.Email) == "" {
		portalsdk.ErrInvalidRequest.WithDescription("user_id or email is required").WriteError(w)
		return
	}

	res, err := h.AdminService.ResetPassword(r.Context(), req.UserID, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, portalsdk.ResetPasswordResponse{
		Success:     true,
		UserID:      res.UserID,
		Email:       res.Email,
		NewPassword: res.TempPassword,
	})
}
