package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/finman/internal/validate"
)

var ErrNotFound = errors.New("rule not found")

// Rule maps a fragment of a transaction note to a category.
type Rule struct {
	ID       int
	Pattern  string
	Category string
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	ListRules(ctx context.Context) ([]Rule, error)
	SaveRule(ctx context.Context, r Rule) error
	InsertRule(ctx context.Context, r Rule) (Rule, error)
	DeleteRule(ctx context.Context, id int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Pattern  string `validate:"notblank"`
	Category string `validate:"notblank"`
}

func (s *Service) List(ctx context.Context) ([]Rule, error) {
	return s.repo.ListRules(ctx)
}

// Suggest tries to find a category for the given note. Rules match
// case-insensitively anywhere in the note; the longest pattern wins and ties
// go to the most recently learned rule.
// Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, note string) (string, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return "", fmt.Errorf("listing rules: %w", err)
	}

	return bestMatch(rules, note), nil
}

// Learn remembers a mapping between a pattern and a category. Learning an
// existing pattern again replaces its category.
func (s *Service) Learn(ctx context.Context, pattern, category string) (*Rule, error) {
	p := Params{Pattern: strings.TrimSpace(pattern), Category: strings.TrimSpace(category)}
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	for _, r := range rules {
		if strings.EqualFold(r.Pattern, p.Pattern) {
			r.Category = p.Category
			if err := s.repo.SaveRule(ctx, r); err != nil {
				return nil, fmt.Errorf("updating rule: %w", err)
			}

			return &r, nil
		}
	}

	created, err := s.repo.InsertRule(ctx, Rule{Pattern: p.Pattern, Category: p.Category})
	if err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return &created, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteRule(ctx, id)
}

func bestMatch(rules []Rule, note string) string {
	text := strings.ToLower(note)

	var best *Rule

	for i := range rules {
		r := &rules[i]

		pattern := strings.ToLower(strings.TrimSpace(r.Pattern))
		if pattern == "" || !strings.Contains(text, pattern) {
			continue
		}

		if best == nil {
			best = r
			continue
		}

		bestLen := len([]rune(strings.TrimSpace(best.Pattern)))
		curLen := len([]rune(pattern))

		if curLen > bestLen || (curLen == bestLen && r.ID > best.ID) {
			best = r
		}
	}

	if best == nil {
		return ""
	}

	return best.Category
}
