package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/finman/internal/csvstore"
	"github.com/MrJamesThe3rd/finman/internal/saving"
)

var schema = csvstore.Schema[saving.Saving]{
	Columns: []string{"saving_id", "name", "target_amount", "current_amount", "deadline", "account_id"},
	ID:      func(s saving.Saving) int { return s.ID },
	WithID: func(s saving.Saving, id int) saving.Saving {
		s.ID = id
		return s
	},
	Encode: func(s saving.Saving) []string {
		return []string{
			csvstore.FormatInt(s.ID),
			s.Name,
			csvstore.FormatDecimal(s.TargetAmount),
			csvstore.FormatDecimal(s.CurrentAmount),
			csvstore.FormatDate(s.Deadline),
			csvstore.FormatInt(s.AccountID),
		}
	},
	Decode: func(r *csvstore.Row) saving.Saving {
		return saving.Saving{
			ID:            r.Int("saving_id"),
			Name:          r.String("name"),
			TargetAmount:  r.Decimal("target_amount"),
			CurrentAmount: r.Decimal("current_amount"),
			Deadline:      r.Date("deadline"),
			AccountID:     r.Int("account_id"),
		}
	},
}

type Store struct {
	table *csvstore.Table[saving.Saving]
}

func New(path string) *Store {
	return &Store{table: csvstore.NewTable(path, schema)}
}

func (s *Store) ListSavings(ctx context.Context) ([]saving.Saving, error) {
	savings, err := s.table.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading savings: %w", err)
	}

	return savings, nil
}

func (s *Store) GetSaving(ctx context.Context, id int) (saving.Saving, error) {
	sv, err := s.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, csvstore.ErrNotFound) {
			return sv, saving.ErrNotFound
		}

		return sv, fmt.Errorf("getting saving %d: %w", id, err)
	}

	return sv, nil
}

func (s *Store) SaveSaving(ctx context.Context, sv saving.Saving) error {
	if err := s.table.Save(ctx, sv); err != nil {
		return fmt.Errorf("saving goal %d: %w", sv.ID, err)
	}

	return nil
}

func (s *Store) InsertSaving(ctx context.Context, sv saving.Saving) (saving.Saving, error) {
	created, err := s.table.Insert(ctx, sv)
	if err != nil {
		return saving.Saving{}, fmt.Errorf("inserting saving: %w", err)
	}

	return created[0], nil
}

func (s *Store) DeleteSaving(ctx context.Context, id int) error {
	res, err := s.table.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting saving %d: %w", id, err)
	}

	if !res.Removed {
		return saving.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateSavings(ctx context.Context, fn func(sv *saving.Saving) bool) error {
	err := s.table.Update(ctx, func(savings []saving.Saving) ([]saving.Saving, bool) {
		changed := false

		for i := range savings {
			if fn(&savings[i]) {
				changed = true
			}
		}

		return savings, changed
	})
	if err != nil {
		return fmt.Errorf("updating savings: %w", err)
	}

	return nil
}
