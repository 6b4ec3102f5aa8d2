package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/export"
	"github.com/MrJamesThe3rd/finman/internal/http/render"
)

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *export.Service
	dir string
}

// NewHandler serves exports. Workbooks saved on the server go to dir.
func NewHandler(svc *export.Service, dir string) *Handler {
	return &Handler{svc: svc, dir: dir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.save)
	r.Get("/download", h.download)
}

type exportRequest struct {
	Account  string `json:"account"`
	FileName string `json:"file_name,omitempty"`
}

type exportResponse struct {
	ID           uuid.UUID       `json:"id"`
	Path         string          `json:"path"`
	Account      string          `json:"account"`
	Transactions int             `json:"transactions"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Savings      decimal.Decimal `json:"savings"`
	NetWorth     decimal.Decimal `json:"net_worth"`
	Summary      string          `json:"summary"`
	CreatedAt    time.Time       `json:"created_at"`
}

// save writes the workbook into the export directory. Only the base name
// of file_name is used, and names that resolve outside dir are rejected.
func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !render.Decode(w, r, &req) {
		return
	}

	name := export.DefaultFileName(req.Account, time.Now())
	if req.FileName != "" {
		var ok bool
		if name, ok = baseName(req.FileName); !ok {
			render.BadRequest(w, "invalid file_name")
			return
		}
	}

	res, err := h.svc.Export(r.Context(), req.Account, filepath.Join(h.dir, name))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, exportResponse{
		ID:           res.ID,
		Path:         res.Path,
		Account:      res.Account,
		Transactions: res.Transactions,
		Income:       res.Totals.Income,
		Expense:      res.Totals.Expense,
		Savings:      res.Totals.Savings,
		NetWorth:     res.NetWorth,
		Summary:      h.svc.GenerateSummary(res),
		CreatedAt:    res.CreatedAt,
	})
}

// baseName strips directories from a client supplied name. It fails for
// names with no file part such as "..", "." or "/".
func baseName(fileName string) (string, bool) {
	name := filepath.Base(strings.ReplaceAll(fileName, `\`, "/"))

	switch name {
	case ".", "..", "/":
		return "", false
	}

	if name == string(filepath.Separator) {
		return "", false
	}

	return name, true
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")

	var buf bytes.Buffer

	rep, err := h.svc.Stream(r.Context(), account, &buf)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if !rep.Found {
		render.NotFound(w, "account not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.DefaultFileName(account, time.Now())))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}
