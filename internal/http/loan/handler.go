package loan

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/http/render"
	"github.com/MrJamesThe3rd/finman/internal/loan"
)

type Handler struct {
	svc *loan.Service
}

func NewHandler(svc *loan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/repay", h.repay)
	r.Post("/{id}/paid", h.markPaid)
}

type loanRequest struct {
	Type               loan.Type       `json:"type"`
	LenderName         string          `json:"lender_name"`
	BorrowerName       string          `json:"borrower_name"`
	DueDate            string          `json:"due_date"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	StartDate          string          `json:"start_date"`
	FromAccountID      int             `json:"from_account_id"`
	ToAccountID        int             `json:"to_account_id"`
}

func (req loanRequest) params() (loan.Params, bool) {
	due, err := render.Date(req.DueDate)
	if err != nil {
		return loan.Params{}, false
	}

	start, err := render.Date(req.StartDate)
	if err != nil {
		return loan.Params{}, false
	}

	return loan.Params{
		Type:               req.Type,
		LenderName:         req.LenderName,
		BorrowerName:       req.BorrowerName,
		DueDate:            due,
		RemainingPrincipal: req.RemainingPrincipal,
		Principal:          req.Principal,
		InterestRate:       req.InterestRate,
		StartDate:          start,
		FromAccountID:      req.FromAccountID,
		ToAccountID:        req.ToAccountID,
	}, true
}

type loanResponse struct {
	ID                 int             `json:"id"`
	Type               loan.Type       `json:"type"`
	LenderName         string          `json:"lender_name"`
	BorrowerName       string          `json:"borrower_name"`
	DueDate            string          `json:"due_date"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	Status             loan.Status     `json:"status"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	StartDate          string          `json:"start_date,omitempty"`
	FromAccountID      int             `json:"from_account_id,omitempty"`
	ToAccountID        int             `json:"to_account_id,omitempty"`
}

func toResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		ID:                 l.ID,
		Type:               l.Type,
		LenderName:         l.LenderName,
		BorrowerName:       l.BorrowerName,
		DueDate:            render.FormatDate(l.DueDate),
		RemainingPrincipal: l.RemainingPrincipal,
		Status:             l.Status,
		Principal:          l.Principal,
		InterestRate:       l.InterestRate,
		StartDate:          render.FormatDate(l.StartDate),
		FromAccountID:      l.FromAccountID,
		ToAccountID:        l.ToAccountID,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]loanResponse, len(loans))
	for i := range loans {
		resp[i] = toResponse(&loans[i])
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(l))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !render.Decode(w, r, &req) {
		return
	}

	params, ok := req.params()
	if !ok {
		render.BadRequest(w, "invalid date")
		return
	}

	l, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(l))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req loanRequest
	if !render.Decode(w, r, &req) {
		return
	}

	params, ok := req.params()
	if !ok {
		render.BadRequest(w, "invalid date")
		return
	}

	l, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(l))
}

type repayRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) repay(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req repayRequest
	if !render.Decode(w, r, &req) {
		return
	}

	l, err := h.svc.Repay(r.Context(), id, req.Amount)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(l))
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	l, err := h.svc.MarkPaid(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(l))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
