package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/csvstore"
)

var schema = csvstore.Schema[account.Account]{
	Columns: []string{"account_id", "name", "balance", "type"},
	ID:      func(a account.Account) int { return a.ID },
	WithID: func(a account.Account, id int) account.Account {
		a.ID = id
		return a
	},
	Encode: func(a account.Account) []string {
		return []string{
			csvstore.FormatInt(a.ID),
			a.Name,
			csvstore.FormatDecimal(a.Balance),
			string(a.Type),
		}
	},
	Decode: func(r *csvstore.Row) account.Account {
		return account.Account{
			ID:      r.Int("account_id"),
			Name:    r.String("name"),
			Balance: r.Decimal("balance"),
			Type:    account.Type(r.Code("type")),
		}
	},
}

type Store struct {
	table *csvstore.Table[account.Account]
}

func New(path string) *Store {
	return &Store{table: csvstore.NewTable(path, schema)}
}

func (s *Store) ListAccounts(ctx context.Context) ([]account.Account, error) {
	accounts, err := s.table.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) SaveAccount(ctx context.Context, a account.Account) error {
	if err := s.table.Save(ctx, a); err != nil {
		return fmt.Errorf("saving account %d: %w", a.ID, err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int) (map[int]int, error) {
	res, err := s.table.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deleting account %d: %w", id, err)
	}

	if !res.Removed {
		return nil, account.ErrNotFound
	}

	return res.Moved, nil
}
