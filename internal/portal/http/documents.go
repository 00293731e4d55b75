package http

import (
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// maxUploadBytes caps document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// DocumentsHandler serves /v1/documents. Uploads are multipart: a "file"
// part plus form fields for the metadata.
type DocumentsHandler struct {
	DocumentService *service.DocumentService
}

func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.DocumentService.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.Document, len(docs))
	for i, d := range docs {
		out[i] = toDocument(d)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *DocumentsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		portalsdk.ErrInvalidRequest.WithDescription("multipart form expected").WriteError(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		portalsdk.ErrInvalidRequest.WithDescription("file part is required").WriteError(w)
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		portalsdk.ErrInvalidRequest.WithDescription("title is required").WriteError(w)
		return
	}

	doc, err := h.DocumentService.Upload(r.Context(), service.UploadInput{
		Title:       title,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toDocument(doc))
}

func (h *DocumentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.DocumentService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
