package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finman/internal/csvstore"
	"github.com/MrJamesThe3rd/finman/internal/loan"
)

var schema = csvstore.Schema[loan.Loan]{
	Columns: []string{
		"loan_id", "type", "lender_name", "borrower_name", "due_date", "remaining_principal", "status",
		"principal", "interest_rate", "start_date", "from_account_id", "to_account_id",
	},
	ID: func(l loan.Loan) int { return l.ID },
	WithID: func(l loan.Loan, id int) loan.Loan {
		l.ID = id
		return l
	},
	Encode: func(l loan.Loan) []string {
		return []string{
			csvstore.FormatInt(l.ID),
			string(l.Type),
			l.LenderName,
			l.BorrowerName,
			csvstore.FormatDate(l.DueDate),
			csvstore.FormatDecimal(l.RemainingPrincipal),
			string(l.Status),
			csvstore.FormatDecimal(l.Principal),
			csvstore.FormatDecimal(l.InterestRate),
			csvstore.FormatDate(l.StartDate),
			csvstore.FormatInt(l.FromAccountID),
			csvstore.FormatInt(l.ToAccountID),
		}
	},
	Decode: func(r *csvstore.Row) loan.Loan {
		l := loan.Loan{
			ID:                 r.Int("loan_id"),
			Type:               loan.Type(r.Code("type")),
			LenderName:         r.String("lender_name"),
			BorrowerName:       r.String("borrower_name"),
			DueDate:            r.Date("due_date"),
			RemainingPrincipal: r.Decimal("remaining_principal"),
			Status:             loan.Status(r.Code("status")),
			Principal:          r.Decimal("principal"),
			InterestRate:       r.Decimal("interest_rate"),
			StartDate:          r.Date("start_date"),
			FromAccountID:      r.Int("from_account_id"),
			ToAccountID:        r.Int("to_account_id"),
		}

		// Older files have no principal column.
		if l.Principal.IsZero() {
			l.Principal = l.RemainingPrincipal
		}

		if l.Status == "" {
			l.Status = loan.StatusPending
		}

		return l
	},
}

type Store struct {
	table *csvstore.Table[loan.Loan]
}

func New(path string) *Store {
	return &Store{table: csvstore.NewTable(path, schema)}
}

func (s *Store) ListLoans(ctx context.Context) ([]loan.Loan, error) {
	loans, err := s.table.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading loans: %w", err)
	}

	return loans, nil
}

func (s *Store) GetLoan(ctx context.Context, id int) (loan.Loan, error) {
	l, err := s.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, csvstore.ErrNotFound) {
			return l, loan.ErrNotFound
		}

		return l, fmt.Errorf("getting loan %d: %w", id, err)
	}

	return l, nil
}

func (s *Store) SaveLoan(ctx context.Context, l loan.Loan) error {
	if err := s.table.Save(ctx, l); err != nil {
		return fmt.Errorf("saving loan %d: %w", l.ID, err)
	}

	return nil
}

func (s *Store) InsertLoan(ctx context.Context, l loan.Loan) (loan.Loan, error) {
	created, err := s.table.Insert(ctx, l)
	if err != nil {
		return loan.Loan{}, fmt.Errorf("inserting loan: %w", err)
	}

	return created[0], nil
}

func (s *Store) DeleteLoan(ctx context.Context, id int) error {
	res, err := s.table.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting loan %d: %w", id, err)
	}

	if !res.Removed {
		return loan.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateLoans(ctx context.Context, fn func(l *loan.Loan) bool) error {
	err := s.table.Update(ctx, func(loans []loan.Loan) ([]loan.Loan, bool) {
		changed := false

		for i := range loans {
			if fn(&loans[i]) {
				changed = true
			}
		}

		return loans, changed
	})
	if err != nil {
		return fmt.Errorf("updating loans: %w", err)
	}

	return nil
}
