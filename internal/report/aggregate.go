// Package report aggregates filtered transactions, loans and savings into
// the figures shown on the report screens and written to the workbook.
// The aggregation functions are pure: they never touch storage and never
// modify their inputs.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/loan"
	"github.com/MrJamesThe3rd/finman/internal/saving"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// MonthRow holds absolute totals per transaction type for one YYYY-MM month.
type MonthRow struct {
	Month       string
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Savings     decimal.Decimal
	Transfer    decimal.Decimal
	TransferIn  decimal.Decimal
	TransferOut decimal.Decimal
}

// Monthly returns one row per month present in txs, oldest first.
func Monthly(txs []transaction.Transaction) []MonthRow {
	byMonth := make(map[string]*MonthRow)

	for _, t := range txs {
		m := t.Month()

		row, ok := byMonth[m]
		if !ok {
			row = &MonthRow{Month: m}
			byMonth[m] = row
		}

		v := t.Amount.Abs()

		switch t.Type {
		case transaction.TypeIncome:
			row.Income = row.Income.Add(v)
		case transaction.TypeExpense:
			row.Expense = row.Expense.Add(v)
		case transaction.TypeSaving:
			row.Savings = row.Savings.Add(v)
		case transaction.TypeTransfer:
			row.Transfer = row.Transfer.Add(v)
		case transaction.TypeTransferIn:
			row.TransferIn = row.TransferIn.Add(v)
		case transaction.TypeTransferOut:
			row.TransferOut = row.TransferOut.Add(v)
		}
	}

	rows := make([]MonthRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}

	slices.SortFunc(rows, func(a, b MonthRow) int {
		return cmp.Compare(a.Month, b.Month)
	})

	return rows
}

type CashPoint struct {
	Date    time.Time
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

// CashFlow is the running balance of a transaction list.
//
// NetChange is measured from the first point (Closing - Opening), Total from
// zero (equal to Closing).
type CashFlow struct {
	Points    []CashPoint
	Opening   decimal.Decimal
	Closing   decimal.Decimal
	NetChange decimal.Decimal
	Total     decimal.Decimal
}

// CashFlowOf sorts txs by date and accumulates their signed amounts.
func CashFlowOf(txs []transaction.Transaction) CashFlow {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b transaction.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	var (
		cf      CashFlow
		balance decimal.Decimal
	)

	for _, t := range sorted {
		v := t.Signed()
		balance = balance.Add(v)
		cf.Points = append(cf.Points, CashPoint{Date: t.Date, Amount: v, Balance: balance})
	}

	if len(cf.Points) == 0 {
		return cf
	}

	cf.Opening = cf.Points[0].Balance
	cf.Closing = cf.Points[len(cf.Points)-1].Balance
	cf.NetChange = cf.Closing.Sub(cf.Opening)
	cf.Total = cf.Closing

	return cf
}

// CategoryRow is one (type, category) total with its share of the type total in percent.
type CategoryRow struct {
	Type     transaction.Type
	Category string
	Amount   decimal.Decimal
	Share    decimal.Decimal
}

var categoryTypes = []transaction.Type{
	transaction.TypeExpense,
	transaction.TypeIncome,
	transaction.TypeSaving,
}

// Categories sums absolute amounts per category for expenses, income and
// saving deposits, in that order. Categories keep their first-seen order.
// Share is rounded to two decimals.
func Categories(txs []transaction.Transaction) []CategoryRow {
	var rows []CategoryRow

	for _, typ := range categoryTypes {
		var (
			order []string
			total decimal.Decimal
		)

		sums := make(map[string]decimal.Decimal)

		for _, t := range txs {
			if t.Type != typ {
				continue
			}

			if _, ok := sums[t.Category]; !ok {
				order = append(order, t.Category)
			}

			v := t.Amount.Abs()
			sums[t.Category] = sums[t.Category].Add(v)
			total = total.Add(v)
		}

		for _, c := range order {
			share := decimal.Zero
			if total.IsPositive() {
				share = sums[c].Mul(hundred).Div(total).Round(2)
			}

			rows = append(rows, CategoryRow{Type: typ, Category: c, Amount: sums[c], Share: share})
		}
	}

	return rows
}

type Totals struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Savings    decimal.Decimal
	Difference decimal.Decimal
}

// TotalsOf sums absolute income, expenses and saving deposits.
// Difference is income minus expenses minus savings.
func TotalsOf(txs []transaction.Transaction) Totals {
	var tot Totals

	for _, t := range txs {
		v := t.Amount.Abs()

		switch t.Type {
		case transaction.TypeIncome:
			tot.Income = tot.Income.Add(v)
		case transaction.TypeExpense:
			tot.Expense = tot.Expense.Add(v)
		case transaction.TypeSaving:
			tot.Savings = tot.Savings.Add(v)
		}
	}

	tot.Difference = tot.Income.Sub(tot.Expense).Sub(tot.Savings)

	return tot
}

// AssetKindAccount and AssetKindSaving label asset lines. Loan lines use the
// loan type as their kind.
const (
	AssetKindAccount = "Tài khoản"
	AssetKindSaving  = "Tiết kiệm"
)

type AssetItem struct {
	Kind   string
	Name   string
	Amount decimal.Decimal
}

type AssetSnapshot struct {
	Items      []AssetItem
	Balances   decimal.Decimal
	Receivable decimal.Decimal
	Payable    decimal.Decimal
	Savings    decimal.Decimal
	NetWorth   decimal.Decimal
}

// Empty reports whether there is nothing to show.
func (a AssetSnapshot) Empty() bool {
	return len(a.Items) == 0
}

// Assets computes net worth as balances + lent - borrowed + savings, using
// the remaining principal of each loan. For a single account, loans are
// matched by the account name and savings by account id.
func Assets(accounts []account.Account, loans []loan.Loan, savings []saving.Saving, sel transaction.Selector) AssetSnapshot {
	var snap AssetSnapshot

	for _, a := range accounts {
		if !sel.All() && a.ID != sel.AccountID {
			continue
		}

		snap.Balances = snap.Balances.Add(a.Balance)
		snap.Items = append(snap.Items, AssetItem{Kind: AssetKindAccount, Name: a.Name, Amount: a.Balance})
	}

	for _, l := range loans {
		if !sel.All() && !l.MatchesAccount(sel.AccountName) {
			continue
		}

		switch l.Type {
		case loan.TypeLend:
			snap.Receivable = snap.Receivable.Add(l.RemainingPrincipal)
		case loan.TypeBorrow:
			snap.Payable = snap.Payable.Add(l.RemainingPrincipal)
		default:
			continue
		}

		snap.Items = append(snap.Items, AssetItem{
			Kind:   string(l.Type),
			Name:   l.LenderName + " -> " + l.BorrowerName,
			Amount: l.RemainingPrincipal,
		})
	}

	for _, s := range savings {
		if !sel.All() && s.AccountID != sel.AccountID {
			continue
		}

		snap.Savings = snap.Savings.Add(s.CurrentAmount)
		snap.Items = append(snap.Items, AssetItem{Kind: AssetKindSaving, Name: s.Name, Amount: s.CurrentAmount})
	}

	snap.NetWorth = snap.Balances.Add(snap.Receivable).Sub(snap.Payable).Add(snap.Savings)

	return snap
}
