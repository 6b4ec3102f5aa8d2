package transaction

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	ListTransactions(ctx context.Context) ([]Transaction, error)
	GetTransaction(ctx context.Context, id int) (Transaction, error)
	SaveTransaction(ctx context.Context, tx Transaction) error
	// InsertTransactions assigns ids to txs and stores them in one write.
	InsertTransactions(ctx context.Context, txs []Transaction) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, id int) error
	// UpdateTransactions rewrites every transaction for which fn returns true.
	UpdateTransactions(ctx context.Context, fn func(tx *Transaction) bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date      time.Time       `validate:"date"`
	Type      Type            `validate:"enum"`
	Amount    decimal.Decimal `validate:"gt=0"`
	Category  string
	AccountID int `validate:"gt=0"`
	Note      string
}

type TransferParams struct {
	FromID   int    `validate:"gt=0"`
	FromName string `validate:"notblank"`
	ToID     int    `validate:"gt=0,nefield=FromID"`
	ToName   string `validate:"notblank"`

	Amount decimal.Decimal `validate:"gt=0"`
	Date   time.Time       `validate:"date"`
	Note   string
}

// List returns the transactions for the selector. See Filter.
func (s *Service) List(ctx context.Context, sel Selector) ([]Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return Filter(txs, sel), nil
}

// Recent returns up to limit transactions, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return b.ID - a.ID
	})

	if len(txs) > limit {
		txs = txs[:limit]
	}

	return txs, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	created, err := s.repo.InsertTransactions(ctx, []Transaction{fromParams(params)})
	if err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return &created[0], nil
}

func (s *Service) Update(ctx context.Context, id int, params CreateParams) (*Transaction, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetTransaction(ctx, id); err != nil {
		return nil, err
	}

	tx := fromParams(params)
	tx.ID = id

	if err := s.repo.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return &tx, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// Uncategorized returns the transactions still waiting for a category,
// oldest first. Imported statement rows land here.
func (s *Service) Uncategorized(ctx context.Context) ([]Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var out []Transaction

	for _, t := range txs {
		if t.Type != TypeTransfer && strings.TrimSpace(t.Category) == "" {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return out, nil
}

// Categorize sets the category of one transaction.
func (s *Service) Categorize(ctx context.Context, id int, category string) (*Transaction, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validate.Invalid("category", "notblank", "")
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	tx.Category = category

	if err := s.repo.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("categorizing transaction: %w", err)
	}

	return &tx, nil
}

// Transfer records a single transfer on the sending account. The receiving
// account sees it through Filter.
func (s *Service) Transfer(ctx context.Context, params TransferParams) (*Transaction, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	return s.Create(ctx, CreateParams{
		Date:      params.Date,
		Type:      TypeTransfer,
		Amount:    params.Amount,
		Category:  TransferCategory(params.FromName, params.ToName),
		AccountID: params.FromID,
		Note:      params.Note,
	})
}

// RecordDeposit books a saving deposit against the funding account.
func (s *Service) RecordDeposit(ctx context.Context, accountID int, goal string, amount decimal.Decimal, date time.Time) error {
	_, err := s.Create(ctx, CreateParams{
		Date:      date,
		Type:      TypeSaving,
		Amount:    amount,
		Category:  goal,
		AccountID: accountID,
		Note:      "Gửi tiết kiệm: " + goal,
	})

	return err
}

// RemapAccounts follows an account renumbering. Transactions of the deleted
// account are detached (account id 0) rather than removed.
func (s *Service) RemapAccounts(ctx context.Context, deleted int, moved map[int]int) error {
	return s.repo.UpdateTransactions(ctx, func(tx *Transaction) bool {
		if tx.AccountID == deleted {
			tx.AccountID = 0
			return true
		}

		if id, ok := moved[tx.AccountID]; ok {
			tx.AccountID = id
			return true
		}

		return false
	})
}

type ImportResult struct {
	Imported  []Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing Transaction
}

type dupKey struct {
	Date      string
	Amount    string
	Type      Type
	AccountID int
	Note      string
}

func keyOf(date time.Time, amount decimal.Decimal, typ Type, accountID int, note string) dupKey {
	return dupKey{
		Date:      date.Format(time.DateOnly),
		Amount:    amount.Abs().String(),
		Type:      typ,
		AccountID: accountID,
		Note:      strings.TrimSpace(note),
	}
}

// ImportBatch stores params unless some of them look like transactions that
// already exist. In that case nothing is written and the caller decides
// which conflicts to keep, then calls CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for i, p := range params {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	existing, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	lookup := make(map[dupKey]Transaction, len(existing))
	for _, t := range existing {
		lookup[keyOf(t.Date, t.Amount, t.Type, t.AccountID, t.Note)] = t
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		found, ok := lookup[keyOf(p.Date, p.Amount, p.Type, p.AccountID, p.Note)]
		if ok {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: found})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs, err := s.CreateBatch(ctx, newParams)
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: txs}, nil
}

func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]Transaction, len(params))

	for i, p := range params {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = fromParams(p)
	}

	created, err := s.repo.InsertTransactions(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return created, nil
}

func fromParams(p CreateParams) Transaction {
	return Transaction{
		Date:      p.Date,
		Type:      p.Type,
		Amount:    p.Amount.Abs(),
		Category:  strings.TrimSpace(p.Category),
		AccountID: p.AccountID,
		Note:      strings.TrimSpace(p.Note),
	}
}
