package http

import (
	"net/http"
	"strconv"

	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// MessagesHandler serves the residents' message board.
type MessagesHandler struct {
	MessageService *service.MessageService
}

func (h *MessagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	msgs, err := h.MessageService.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.Message, len(msgs))
	for i, m := range msgs {
		out[i] = toMessage(m)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *MessagesHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.PostMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.MessageService.Post(r.Context(), req.Message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMessage(m))
}
