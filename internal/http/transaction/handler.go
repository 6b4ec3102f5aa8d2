package transaction

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/http/render"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	accounts *account.Service
}

func NewHandler(svc *transaction.Service, accounts *account.Service) *Handler {
	return &Handler{svc: svc, accounts: accounts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/transfers", h.transfer)
	r.Get("/uncategorized", h.uncategorized)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/category", h.categorize)
	r.Delete("/{id}", h.delete)
}

type transactionRequest struct {
	Date      string           `json:"date"`
	Type      transaction.Type `json:"type"`
	Amount    decimal.Decimal  `json:"amount"`
	Category  string           `json:"category"`
	AccountID int              `json:"account_id"`
	Note      string           `json:"note"`
}

func (req transactionRequest) params() (transaction.CreateParams, error) {
	date, err := render.Date(req.Date)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		Date:      date,
		Type:      req.Type,
		Amount:    req.Amount,
		Category:  req.Category,
		AccountID: req.AccountID,
		Note:      req.Note,
	}, nil
}

// list returns every transaction, or the view of one account when
// account_id is given. Transfers then show as sent or received.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sel := transaction.AllAccounts

	if s := r.URL.Query().Get("account_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			render.BadRequest(w, "invalid account_id")
			return
		}

		acc, err := h.accounts.Get(r.Context(), id)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		sel = transaction.ForAccount(acc.ID, acc.Name)
	}

	txs, err := h.svc.List(r.Context(), sel)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) uncategorized(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.Uncategorized(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(*tx))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		render.BadRequest(w, "invalid date")
		return
	}

	if params.AccountID > 0 {
		if _, err := h.accounts.Get(r.Context(), params.AccountID); err != nil {
			render.Error(w, r, err)
			return
		}
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(*tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if !render.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		render.BadRequest(w, "invalid date")
		return
	}

	tx, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(*tx))
}

type categoryRequest struct {
	Category string `json:"category"`
}

func (h *Handler) categorize(w http.ResponseWriter, r *http.Request) {
	id, ok := render.ID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !render.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.Categorize(r.Context(), id, req.Category)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(*tx))
}

type transferRequest struct {
	FromID int             `json:"from_id"`
	ToID   int             `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Note   string          `json:"note"`
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !render.Decode(w, r, &req) {
		return
	}

	date, err := render.Date(req.Date)
	if err != nil {
		render.BadRequest(w, "invalid date")
		return
	}

	from, err := h.accounts.Get(r.Context(), req.FromID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	to, err := h.accounts.Get(r.Context(), req.ToID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	tx, err := h.svc.Transfer(r.Context(), transaction.TransferParams{
		FromID:   from.ID,
		FromName: from.Name,
		ToID:     to.ID,
		ToName:   to.Name,
		Amount:   req.Amount,
		Date:     date,
		Note:     req.Note,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(*tx))
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
