package saving

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/http/render"
	"github.com/MrJamesThe3rd/finman/internal/saving"
)

type Handler struct {
	svc *saving.Service
}

func NewHandler(svc *saving.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/deposit", h.deposit)
}

type savingRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline"`
	AccountID     int             `json:"account_id"`
}

type savingResponse struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"`
	AccountID     int             `json:"account_id,omitempty"`
	Progress      decimal.Decimal `json:"progress"`
	Remaining     decimal.Decimal `json:"remaining"`
}

func toResponse(sv *saving.Saving) savingResponse {
	return savingResponse{
		ID:            sv.ID,
		Name:          sv.Name,
		TargetAmount:  sv.TargetAmount,
		CurrentAmount: sv.CurrentAmount,
		Deadline:      render.FormatDate(sv.Deadline),
		AccountID:     sv.AccountID,
		Progress:      sv.Progress(),
		Remaining:     sv.Remaining(),
	}
}

func decodeParams(w http.ResponseWriter, r *http.Request) (saving.Params, bool) {
	var req savingRequest
	if !render.Decode(w, r, &req) {
		return saving.Params{}, false
	}

	deadline, err := render.Date(req.Deadline)
	if err != nil {
		render.BadRequest(w, "invalid deadline")
		return saving.Params{}, false
	}

	return saving.Params{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		AccountID:     req.AccountID,
	}, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	savings, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]savingResponse, len(savings))
	for i := range savings {
		resp[i] = toResponse(&savings[i])
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	sv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(sv))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	sv, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(sv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	sv, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(sv))
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req depositRequest
	if !render.Decode(w, r, &req) {
		return
	}

	date, err := render.Date(req.Date)
	if err != nil {
		render.BadRequest(w, "invalid date")
		return
	}

	if date.IsZero() {
		now := time.Now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	sv, err := h.svc.Deposit(r.Context(), id, req.Amount, date)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(sv))
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
