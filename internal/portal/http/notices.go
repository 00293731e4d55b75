package http

import (
	"net/http"
	"strconv"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// NoticesHandler serves /v1/notices.
type NoticesHandler struct {
	NoticeService *service.NoticeService
}

func (h *NoticesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notices, err := h.NoticeService.List(r.Context(), r.URL.Query().Get("category"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.Notice, len(notices))
	for i, n := range notices {
		out[i] = toNotice(n)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *NoticesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.CreateNoticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		portalsdk.ErrInvalidRequest.WithDescription("title is required").WriteError(w)
		return
	}

	n, err := h.NoticeService.Create(r.Context(), domain.Notice{
		Title:    req.Title,
		Summary:  req.Summary,
		Category: req.Category,
		Date:     req.Date,
		FileURL:  req.FileURL,
		FileType: req.FileType,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toNotice(n))
}

func (h *NoticesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.NoticeService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
