package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/loan"
	"github.com/MrJamesThe3rd/finman/internal/saving"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

// AllAccountsLabel is the account name that selects every account.
const AllAccountsLabel = "Tất cả tài khoản"

const (
	recentLimit = 5
	dueSoonDays = 7
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=report
type AccountSource interface {
	List(ctx context.Context) ([]account.Account, error)
}

type TransactionSource interface {
	List(ctx context.Context, sel transaction.Selector) ([]transaction.Transaction, error)
	Recent(ctx context.Context, limit int) ([]transaction.Transaction, error)
}

type LoanSource interface {
	List(ctx context.Context) ([]loan.Loan, error)
}

type SavingSource interface {
	List(ctx context.Context) ([]saving.Saving, error)
}

type Service struct {
	accounts     AccountSource
	transactions TransactionSource
	loans        LoanSource
	savings      SavingSource
}

func NewService(accounts AccountSource, transactions TransactionSource, loans LoanSource, savings SavingSource) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		loans:        loans,
		savings:      savings,
	}
}

// Report is everything the report screens and the workbook show for one
// account, or for all of them.
type Report struct {
	Account      string
	Found        bool
	Transactions []transaction.Transaction
	AccountNames map[int]string
	Monthly      []MonthRow
	CashFlow     CashFlow
	Categories   []CategoryRow
	Totals       Totals
	Assets       AssetSnapshot
}

// AccountName returns the display name of the account that owns t.
func (r *Report) AccountName(t transaction.Transaction) string {
	return r.AccountNames[t.AccountID]
}

// AccountChoices lists the selectable report scopes: all accounts first,
// then every account name.
func (s *Service) AccountChoices(ctx context.Context) ([]string, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	names := make([]string, 0, len(accounts)+1)
	names = append(names, AllAccountsLabel)

	for _, a := range accounts {
		names = append(names, a.Name)
	}

	return names, nil
}

// Selector resolves an account name. An empty name or AllAccountsLabel
// selects all accounts. ok is false when no account has that name.
func (s *Service) Selector(ctx context.Context, accountName string) (transaction.Selector, bool, error) {
	if accountName == "" || accountName == AllAccountsLabel {
		return transaction.AllAccounts, true, nil
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return transaction.Selector{}, false, fmt.Errorf("listing accounts: %w", err)
	}

	for _, a := range accounts {
		if a.Name == accountName {
			return transaction.ForAccount(a.ID, a.Name), true, nil
		}
	}

	return transaction.Selector{}, false, nil
}

// Transactions returns the filtered transactions for accountName. An unknown
// account yields no transactions.
func (s *Service) Transactions(ctx context.Context, accountName string) ([]transaction.Transaction, error) {
	sel, ok, err := s.Selector(ctx, accountName)
	if err != nil || !ok {
		return nil, err
	}

	txs, err := s.transactions.List(ctx, sel)
	if err != nil {
		return nil, err
	}

	return byDate(txs), nil
}

// byDate orders txs by date, keeping file order within a day. The
// all-accounts selection comes back unsorted.
func byDate(txs []transaction.Transaction) []transaction.Transaction {
	slices.SortStableFunc(txs, func(a, b transaction.Transaction) int { return a.Date.Compare(b.Date) })

	return txs
}

// Build loads all tables and aggregates them for accountName.
func (s *Service) Build(ctx context.Context, accountName string) (*Report, error) {
	if accountName == "" {
		accountName = AllAccountsLabel
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	rep := &Report{
		Account:      accountName,
		AccountNames: make(map[int]string, len(accounts)),
	}

	for _, a := range accounts {
		rep.AccountNames[a.ID] = a.Name
	}

	sel, ok, err := s.Selector(ctx, accountName)
	if err != nil {
		return nil, err
	}

	if !ok {
		return rep, nil
	}

	rep.Found = true

	txs, err := s.transactions.List(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	loans, err := s.loans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}

	savings, err := s.savings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing savings: %w", err)
	}

	rep.Transactions = byDate(txs)
	rep.Monthly = Monthly(txs)
	rep.CashFlow = CashFlowOf(txs)
	rep.Categories = Categories(txs)
	rep.Totals = TotalsOf(txs)
	rep.Assets = Assets(accounts, loans, savings, sel)

	return rep, nil
}

type DueLoan struct {
	Loan loan.Loan
	Days int
}

type SavingGoal struct {
	Saving   saving.Saving
	Progress decimal.Decimal
}

// Dashboard is the overview shown on start.
type Dashboard struct {
	TotalBalance decimal.Decimal
	Month        string
	MonthTotals  Totals
	Overdue      []loan.Loan
	DueSoon      []DueLoan
	Savings      []SavingGoal
	Recent       []transaction.Transaction
	AccountNames map[int]string
}

// Dashboard summarises the current month as seen at now. Loans due within
// the next seven days are listed separately from overdue ones.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	txs, err := s.transactions.List(ctx, transaction.AllAccounts)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	loans, err := s.loans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}

	savings, err := s.savings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing savings: %w", err)
	}

	recent, err := s.transactions.Recent(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent transactions: %w", err)
	}

	d := &Dashboard{
		Month:        now.Format("2006-01"),
		Recent:       recent,
		AccountNames: make(map[int]string, len(accounts)),
	}

	for _, a := range accounts {
		d.TotalBalance = d.TotalBalance.Add(a.Balance)
		d.AccountNames[a.ID] = a.Name
	}

	var month []transaction.Transaction

	for _, t := range txs {
		if t.Month() == d.Month {
			month = append(month, t)
		}
	}

	d.MonthTotals = TotalsOf(month)

	for _, l := range loans {
		l = l.CheckDueStatus(now)

		switch l.Status {
		case loan.StatusOverdue:
			d.Overdue = append(d.Overdue, l)
		case loan.StatusPending:
			if days := l.DaysUntilDue(now); !l.DueDate.IsZero() && days > 0 && days <= dueSoonDays {
				d.DueSoon = append(d.DueSoon, DueLoan{Loan: l, Days: days})
			}
		}
	}

	for _, sv := range savings {
		d.Savings = append(d.Savings, SavingGoal{Saving: sv, Progress: sv.Progress()})
	}

	return d, nil
}
