package importcsv

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/http/render"
	"github.com/MrJamesThe3rd/finman/internal/importer"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	accounts  *account.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, accounts *account.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		accounts:  accounts,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type paramsDTO struct {
	Date      string           `json:"date"`
	Type      transaction.Type `json:"type"`
	Amount    decimal.Decimal  `json:"amount"`
	Category  string           `json:"category"`
	AccountID int              `json:"account_id"`
	Note      string           `json:"note"`
}

type transactionResponse struct {
	ID int `json:"id"`
	paramsDTO
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

type conflictDTO struct {
	Incoming paramsDTO           `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []paramsDTO   `json:"new"`
	Conflicts []conflictDTO `json:"conflicts"`
}

type confirmRequest struct {
	Params []paramsDTO `json:"params"`
}

// importCSV takes a multipart form with file, account_id, and optionally
// format (statement or ledger) and charset. When some rows look like
// transactions that already exist nothing is stored and the client gets a
// 409 listing them; it then posts the rows it wants to /confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	accountID, err := strconv.Atoi(r.FormValue("account_id"))
	if err != nil {
		render.BadRequest(w, "account_id field is required")
		return
	}

	if _, err := h.accounts.Get(r.Context(), accountID); err != nil {
		render.Error(w, r, err)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatStatement
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.Context(), importer.Request{
		Format:    format,
		AccountID: accountID,
		Charset:   r.FormValue("charset"),
	}, file)
	if err != nil {
		render.BadRequest(w, err.Error())
		return
	}

	result, err := h.txSvc.ImportBatch(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]paramsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		render.JSON(w, http.StatusConflict, resp)

		return
	}

	render.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !render.Decode(w, r, &req) {
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))

	for _, p := range req.Params {
		date, err := render.Date(p.Date)
		if err != nil {
			render.BadRequest(w, "invalid date "+p.Date)
			return
		}

		params = append(params, transaction.CreateParams{
			Date:      date,
			Type:      p.Type,
			Amount:    p.Amount,
			Category:  p.Category,
			AccountID: p.AccountID,
			Note:      p.Note,
		})
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID: tx.ID,
		paramsDTO: paramsDTO{
			Date:      render.FormatDate(tx.Date),
			Type:      tx.Type,
			Amount:    tx.Amount,
			Category:  tx.Category,
			AccountID: tx.AccountID,
			Note:      tx.Note,
		},
	}
}

func toParamsDTO(p transaction.CreateParams) paramsDTO {
	return paramsDTO{
		Date:      render.FormatDate(p.Date),
		Type:      p.Type,
		Amount:    p.Amount,
		Category:  p.Category,
		AccountID: p.AccountID,
		Note:      p.Note,
	}
}
