package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// AuditHandler serves the admin audit viewer.
type AuditHandler struct {
	AuditService *service.AuditService
}

// HandleList godoc
//
//	@Summary		List audit entries
//	@Description	Returns audit trail entries, newest first. Filters compose: action (exact), email (substring),
//	@Description	resource_type (exact), from/to (RFC3339), limit (default 100).
//	@Tags			Audit
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		portalsdk.AuditEntry
//	@Failure		403	{object}	portalsdk.ErrorResponse	"caller is not an admin"
//	@Router			/v1/audit [get].
func (h *AuditHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.AuditFilter{
		Action:       q.Get("action"),
		UserEmail:    q.Get("email"),
		ResourceType: q.Get("resource_type"),
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			portalsdk.ErrInvalidRequest.WithDescription("from must be RFC3339").WriteError(w)
			return
		}
		filter.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			portalsdk.ErrInvalidRequest.WithDescription("to must be RFC3339").WriteError(w)
			return
		}
		filter.To = &ts
	}

	entries, err := h.AuditService.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.AuditEntry, len(entries))
	for i, e := range entries {
		out[i] = toAuditEntry(e)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
