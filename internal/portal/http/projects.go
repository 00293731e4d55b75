package http

import (
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// ProjectsHandler serves /v1/projects and the nested update-note feed.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ProjectService.List(r.Context(), r.URL.Query().Get("committee"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProjects(projects))
}

func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProjectService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProject(p))
}

func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Committee == "" {
		portalsdk.ErrInvalidRequest.WithDescription("name and committee are required").WriteError(w)
		return
	}

	p, err := h.ProjectService.Create(r.Context(), domain.Project{
		Name:        req.Name,
		Committee:   req.Committee,
		Status:      req.Status,
		Timeline:    req.Timeline,
		Budget:      req.Budget,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProject(p))
}

func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.ProjectService.Update(r.Context(), r.PathValue("id"), domain.ProjectPatch{
		Name:        req.Name,
		Status:      req.Status,
		Timeline:    req.Timeline,
		Budget:      req.Budget,
		Progress:    req.Progress,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProject(p))
}

func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProjectService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectsHandler) HandleListUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.ProjectService.ListUpdates(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.ProjectUpdateNote, len(updates))
	for i, u := range updates {
		out[i] = toProjectUpdate(u)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ProjectsHandler) HandleAddUpdate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.AddProjectUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UpdateText == "" {
		portalsdk.ErrInvalidRequest.WithDescription("update_text is required").WriteError(w)
		return
	}

	u, err := h.ProjectService.AddUpdate(r.Context(), r.PathValue("id"), req.UpdateText)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProjectUpdate(u))
}
