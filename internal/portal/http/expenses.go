package http

import (
	"net/http"

	"github.com/suntowerrwa/portal/internal/portal/domain"
	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/portalsdk"
)

// ExpensesHandler serves /v1/expenses.
type ExpensesHandler struct {
	ExpenseService *service.ExpenseService
}

func (h *ExpensesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.ExpenseService.List(r.Context(), r.URL.Query().Get("project_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]portalsdk.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toExpense(e)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ExpensesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.AddExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProjectID == "" || req.Description == "" || req.Amount <= 0 {
		portalsdk.ErrInvalidRequest.WithDescription("project_id, description and a positive amount are required").WriteError(w)
		return
	}

	e, err := h.ExpenseService.Add(r.Context(), domain.Expense{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Amount:      req.Amount,
		Vendor:      req.Vendor,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toExpense(e))
}

// HandleApprove godoc
//
//	@Summary		Approve an expense
//	@Description	Grants one approval kind ("committee" or "general_meeting"). The two flags are independent
//	@Description	and an approval is never undone by granting the other kind.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Expense id"
//	@Param			body	body		portalsdk.ApproveExpenseRequest	true	"Approval kind"
//	@Success		200		{object}	portalsdk.Expense
//	@Failure		400		{object}	portalsdk.ErrorResponse	"unknown approval kind"
//	@Failure		403		{object}	portalsdk.ErrorResponse	"caller is not an admin"
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Router			/v1/expenses/{id}/approve [post].
func (h *ExpensesHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ApproveExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := h.ExpenseService.Approve(r.Context(), r.PathValue("id"), domain.ApprovalKind(req.Kind))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpense(e))
}
