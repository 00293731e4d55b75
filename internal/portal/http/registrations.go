package http

import (
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// RegistrationsHandler serves the public sign-up form and the admin queue.
type RegistrationsHandler struct {
	RegistrationService *service.RegistrationService
}

// HandleSubmit godoc
//
//	@Summary		Submit a registration request
//	@Description	Files a pending account request. This is the only unauthenticated write in the portal.
//	@Tags			Registrations
//	@Accept			json
//	@Produce		json
//	@Param			body	body		portalsdk.RegistrationRequest	true	"Owner details"
//	@Success		201		{object}	portalsdk.Registration
//	@Failure		400		{object}	portalsdk.ErrorResponse
//	@Router			/v1/registrations [post].
func (h *RegistrationsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RegistrationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reg, err := h.RegistrationService.Submit(r.Context(), domain.RegistrationRequest{
		OwnerName: req.OwnerName,
		FlatNo:    req.FlatNo,
		Mobile:    req.Mobile,
		Email:     req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toRegistration(reg))
}

// HandleList returns the registration queue, optionally filtered by status.
func (h *RegistrationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	regs, err := h.RegistrationService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRegistrations(regs))
}

func (h *RegistrationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reg, err := h.RegistrationService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRegistration(reg))
}
