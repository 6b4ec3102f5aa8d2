package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finman/internal/csvstore"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

// Schema is the transactions.csv layout. It is exported for importers that
// read files written by this store.
var Schema = csvstore.Schema[transaction.Transaction]{
	Columns: []string{"transaction_id", "date", "type", "amount", "category", "account_id", "note"},
	ID:      func(t transaction.Transaction) int { return t.ID },
	WithID: func(t transaction.Transaction, id int) transaction.Transaction {
		t.ID = id
		return t
	},
	Encode: func(t transaction.Transaction) []string {
		return []string{
			csvstore.FormatInt(t.ID),
			csvstore.FormatDate(t.Date),
			string(t.Type),
			csvstore.FormatDecimal(t.Amount),
			t.Category,
			csvstore.FormatInt(t.AccountID),
			t.Note,
		}
	},
	Decode: func(r *csvstore.Row) transaction.Transaction {
		return transaction.Transaction{
			ID:        r.Int("transaction_id"),
			Date:      r.Date("date"),
			Type:      transaction.Type(r.Code("type")),
			Amount:    r.Decimal("amount"),
			Category:  r.String("category"),
			AccountID: r.Int("account_id"),
			Note:      r.String("note"),
		}
	},
}

type Store struct {
	table *csvstore.Table[transaction.Transaction]
}

func New(path string) *Store {
	return &Store{table: csvstore.NewTable(path, Schema)}
}

func (s *Store) ListTransactions(ctx context.Context) ([]transaction.Transaction, error) {
	txs, err := s.table.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int) (transaction.Transaction, error) {
	tx, err := s.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, csvstore.ErrNotFound) {
			return tx, transaction.ErrNotFound
		}

		return tx, fmt.Errorf("getting transaction %d: %w", id, err)
	}

	return tx, nil
}

func (s *Store) SaveTransaction(ctx context.Context, tx transaction.Transaction) error {
	if err := s.table.Save(ctx, tx); err != nil {
		return fmt.Errorf("saving transaction %d: %w", tx.ID, err)
	}

	return nil
}

func (s *Store) InsertTransactions(ctx context.Context, txs []transaction.Transaction) ([]transaction.Transaction, error) {
	created, err := s.table.Insert(ctx, txs...)
	if err != nil {
		return nil, fmt.Errorf("inserting transactions: %w", err)
	}

	return created, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int) error {
	res, err := s.table.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}

	if !res.Removed {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateTransactions(ctx context.Context, fn func(tx *transaction.Transaction) bool) error {
	err := s.table.Update(ctx, func(txs []transaction.Transaction) ([]transaction.Transaction, bool) {
		changed := false

		for i := range txs {
			if fn(&txs[i]) {
				changed = true
			}
		}

		return txs, changed
	})
	if err != nil {
		return fmt.Errorf("updating transactions: %w", err)
	}

	return nil
}
