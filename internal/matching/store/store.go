package store

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/finman/internal/csvstore"
	"github.com/MrJamesThe3rd/finman/internal/matching"
)

var schema = csvstore.Schema[matching.Rule]{
	Columns: []string{"rule_id", "pattern", "category"},
	ID:      func(r matching.Rule) int { return r.ID },
	WithID: func(r matching.Rule, id int) matching.Rule {
		r.ID = id
		return r
	},
	Encode: func(r matching.Rule) []string {
		return []string{csvstore.FormatInt(r.ID), r.Pattern, r.Category}
	},
	Decode: func(r *csvstore.Row) matching.Rule {
		return matching.Rule{
			ID:       r.Int("rule_id"),
			Pattern:  r.String("pattern"),
			Category: r.String("category"),
		}
	},
}

type Store struct {
	table *csvstore.Table[matching.Rule]
}

func New(path string) *Store {
	return &Store{table: csvstore.NewTable(path, schema)}
}

func (s *Store) ListRules(ctx context.Context) ([]matching.Rule, error) {
	rules, err := s.table.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	return rules, nil
}

func (s *Store) SaveRule(ctx context.Context, r matching.Rule) error {
	if err := s.table.Save(ctx, r); err != nil {
		return fmt.Errorf("saving rule %d: %w", r.ID, err)
	}

	return nil
}

func (s *Store) InsertRule(ctx context.Context, r matching.Rule) (matching.Rule, error) {
	created, err := s.table.Insert(ctx, r)
	if err != nil {
		return matching.Rule{}, fmt.Errorf("inserting rule: %w", err)
	}

	return created[0], nil
}

// DeleteRule removes the rule. Rule ids are not referenced elsewhere.
func (s *Store) DeleteRule(ctx context.Context, id int) error {
	res, err := s.table.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting rule %d: %w", id, err)
	}

	if !res.Removed {
		return matching.ErrNotFound
	}

	return nil
}
