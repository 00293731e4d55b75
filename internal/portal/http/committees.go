package http

import (
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// CommitteesHandler serves the committee rosters.
type CommitteesHandler struct {
	CommitteeService *service.CommitteeService
}

func (h *CommitteesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.CommitteeService.List(r.Context(), r.URL.Query().Get("committee"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.CommitteeMember, len(members))
	for i, m := range members {
		out[i] = toCommitteeMember(m)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CommitteesHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.CommitteeService.Board(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.CommitteeBoard{
		Convenor:        board.Convenor,
		CommitteeMember: board.CommitteeMember,
		Residents:       board.Residents,
	})
}

func (h *CommitteesHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.UpsertCommitteeMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MemberName == "" {
		portalsdk.ErrInvalidRequest.WithDescription("member_name is required").WriteError(w)
		return
	}

	err := h.CommitteeService.UpsertSeat(r.Context(), domain.CommitteeMember{
		Committee:  req.Committee,
		Slot:       req.Slot,
		MemberName: req.MemberName,
		ProfileID:  req.ProfileID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
