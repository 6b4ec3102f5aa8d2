package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/http/render"
	"github.com/MrJamesThe3rd/finman/internal/loan"
	"github.com/MrJamesThe3rd/finman/internal/report"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.build)
	r.Get("/accounts", h.accounts)
	r.Get("/dashboard", h.dashboard)
}

type monthResponse struct {
	Month       string          `json:"month"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Savings     decimal.Decimal `json:"savings"`
	Transfer    decimal.Decimal `json:"transfer"`
	TransferIn  decimal.Decimal `json:"transfer_in"`
	TransferOut decimal.Decimal `json:"transfer_out"`
}

type cashPointResponse struct {
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

type cashFlowResponse struct {
	Points    []cashPointResponse `json:"points"`
	Opening   decimal.Decimal     `json:"opening"`
	Closing   decimal.Decimal     `json:"closing"`
	NetChange decimal.Decimal     `json:"net_change"`
	Total     decimal.Decimal     `json:"total"`
}

type categoryResponse struct {
	Type     transaction.Type `json:"type"`
	Category string           `json:"category"`
	Amount   decimal.Decimal  `json:"amount"`
	Share    decimal.Decimal  `json:"share"`
}

type totalsResponse struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Savings    decimal.Decimal `json:"savings"`
	Difference decimal.Decimal `json:"difference"`
}

type assetItemResponse struct {
	Kind   string          `json:"kind"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type assetsResponse struct {
	Items      []assetItemResponse `json:"items"`
	Balances   decimal.Decimal     `json:"balances"`
	Receivable decimal.Decimal     `json:"receivable"`
	Payable    decimal.Decimal     `json:"payable"`
	Savings    decimal.Decimal     `json:"savings"`
	NetWorth   decimal.Decimal     `json:"net_worth"`
}

type transactionResponse struct {
	ID       int              `json:"id"`
	Date     string           `json:"date"`
	Type     transaction.Type `json:"type"`
	Amount   decimal.Decimal  `json:"amount"`
	Category string           `json:"category"`
	Account  string           `json:"account"`
	Note     string           `json:"note,omitempty"`
}

type reportResponse struct {
	Account      string                `json:"account"`
	Transactions []transactionResponse `json:"transactions"`
	Monthly      []monthResponse       `json:"monthly"`
	CashFlow     cashFlowResponse      `json:"cash_flow"`
	Categories   []categoryResponse    `json:"categories"`
	Totals       totalsResponse        `json:"totals"`
	Assets       assetsResponse        `json:"assets"`
}

func toTransactions(txs []transaction.Transaction, names map[int]string) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = transactionResponse{
			ID:       t.ID,
			Date:     render.FormatDate(t.Date),
			Type:     t.Type,
			Amount:   t.Amount,
			Category: t.Category,
			Account:  names[t.AccountID],
			Note:     t.Note,
		}
	}

	return resp
}

func toTotals(t report.Totals) totalsResponse {
	return totalsResponse{Income: t.Income, Expense: t.Expense, Savings: t.Savings, Difference: t.Difference}
}

func toReport(rep *report.Report) reportResponse {
	resp := reportResponse{
		Account:      rep.Account,
		Transactions: toTransactions(rep.Transactions, rep.AccountNames),
		Monthly:      make([]monthResponse, len(rep.Monthly)),
		Categories:   make([]categoryResponse, len(rep.Categories)),
		Totals:       toTotals(rep.Totals),
		CashFlow: cashFlowResponse{
			Points:    make([]cashPointResponse, len(rep.CashFlow.Points)),
			Opening:   rep.CashFlow.Opening,
			Closing:   rep.CashFlow.Closing,
			NetChange: rep.CashFlow.NetChange,
			Total:     rep.CashFlow.Total,
		},
		Assets: assetsResponse{
			Items:      make([]assetItemResponse, len(rep.Assets.Items)),
			Balances:   rep.Assets.Balances,
			Receivable: rep.Assets.Receivable,
			Payable:    rep.Assets.Payable,
			Savings:    rep.Assets.Savings,
			NetWorth:   rep.Assets.NetWorth,
		},
	}

	for i, m := range rep.Monthly {
		resp.Monthly[i] = monthResponse(m)
	}

	for i, p := range rep.CashFlow.Points {
		resp.CashFlow.Points[i] = cashPointResponse{Date: render.FormatDate(p.Date), Amount: p.Amount, Balance: p.Balance}
	}

	for i, c := range rep.Categories {
		resp.Categories[i] = categoryResponse(c)
	}

	for i, a := range rep.Assets.Items {
		resp.Assets.Items[i] = assetItemResponse(a)
	}

	return resp
}

// build returns the report for ?account=<name>; no name means all accounts.
func (h *Handler) build(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Build(r.Context(), r.URL.Query().Get("account"))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if !rep.Found {
		render.NotFound(w, "account not found")
		return
	}

	render.JSON(w, http.StatusOK, toReport(rep))
}

func (h *Handler) accounts(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.AccountChoices(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, names)
}

type dueLoanResponse struct {
	ID       int             `json:"id"`
	Type     loan.Type       `json:"type"`
	Lender   string          `json:"lender_name"`
	Borrower string          `json:"borrower_name"`
	DueDate  string          `json:"due_date"`
	Amount   decimal.Decimal `json:"remaining_principal"`
	Days     int             `json:"days"`
}

type goalResponse struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Current  decimal.Decimal `json:"current_amount"`
	Target   decimal.Decimal `json:"target_amount"`
	Progress decimal.Decimal `json:"progress"`
}

type dashboardResponse struct {
	TotalBalance decimal.Decimal       `json:"total_balance"`
	Month        string                `json:"month"`
	MonthTotals  totalsResponse        `json:"month_totals"`
	Overdue      []dueLoanResponse     `json:"overdue"`
	DueSoon      []dueLoanResponse     `json:"due_soon"`
	Savings      []goalResponse        `json:"savings"`
	Recent       []transactionResponse `json:"recent"`
}

func toDueLoan(l loan.Loan, days int) dueLoanResponse {
	return dueLoanResponse{
		ID:       l.ID,
		Type:     l.Type,
		Lender:   l.LenderName,
		Borrower: l.BorrowerName,
		DueDate:  render.FormatDate(l.DueDate),
		Amount:   l.RemainingPrincipal,
		Days:     days,
	}
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	d, err := h.svc.Dashboard(r.Context(), now)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := dashboardResponse{
		TotalBalance: d.TotalBalance,
		Month:        d.Month,
		MonthTotals:  toTotals(d.MonthTotals),
		Overdue:      make([]dueLoanResponse, len(d.Overdue)),
		DueSoon:      make([]dueLoanResponse, len(d.DueSoon)),
		Savings:      make([]goalResponse, len(d.Savings)),
		Recent:       toTransactions(d.Recent, d.AccountNames),
	}

	for i, l := range d.Overdue {
		resp.Overdue[i] = toDueLoan(l, l.DaysUntilDue(now))
	}

	for i, due := range d.DueSoon {
		resp.DueSoon[i] = toDueLoan(due.Loan, due.Days)
	}

	for i, g := range d.Savings {
		resp.Savings[i] = goalResponse{
			ID:       g.Saving.ID,
			Name:     g.Saving.Name,
			Current:  g.Saving.CurrentAmount,
			Target:   g.Saving.TargetAmount,
			Progress: g.Progress,
		}
	}

	render.JSON(w, http.StatusOK, resp)
}
