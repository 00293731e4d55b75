package http

import (
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// ProfilesHandler serves /v1/profiles and /v1/me.
type ProfilesHandler struct {
	ProfileService *service.ProfileService
}

// HandleMe returns the caller's own profile. The coordinator SDK calls this
// right after login to learn the member's role.
func (h *ProfilesHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProfileService.Me(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(p))
}

func (h *ProfilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ProfileService.List(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfiles(profiles))
}

func (h *ProfilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProfileService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(p))
}

func (h *ProfilesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.ProfileService.Update(r.Context(), r.PathValue("id"), domain.ProfileUpdate{
		DisplayName: req.DisplayName,
		FlatNo:      req.FlatNo,
		Mobile:      req.Mobile,
		Role:        req.Role,
		Committees:  req.Committees,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(p))
}
