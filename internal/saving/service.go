package saving

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=saving
type Repository interface {
	ListSavings(ctx context.Context) ([]Saving, error)
	GetSaving(ctx context.Context, id int) (Saving, error)
	SaveSaving(ctx context.Context, s Saving) error
	InsertSaving(ctx context.Context, s Saving) (Saving, error)
	DeleteSaving(ctx context.Context, id int) error
	UpdateSavings(ctx context.Context, fn func(s *Saving) bool) error
}

// Ledger books the transaction that goes with a deposit.
type Ledger interface {
	RecordDeposit(ctx context.Context, accountID int, goal string, amount decimal.Decimal, date time.Time) error
}

type Service struct {
	repo   Repository
	ledger Ledger
}

// NewService creates a saving service. ledger may be nil, in which case
// deposits only move the goal's current amount.
func NewService(repo Repository, ledger Ledger) *Service {
	return &Service{repo: repo, ledger: ledger}
}

type Params struct {
	Name          string          `validate:"notblank"`
	TargetAmount  decimal.Decimal `validate:"gt=0"`
	CurrentAmount decimal.Decimal `validate:"gte=0"`
	Deadline      time.Time
	AccountID     int `validate:"gte=0"`
}

func (s *Service) List(ctx context.Context) ([]Saving, error) {
	return s.repo.ListSavings(ctx)
}

// ForAccount returns the goals funded from the given account.
func (s *Service) ForAccount(ctx context.Context, accountID int) ([]Saving, error) {
	savings, err := s.repo.ListSavings(ctx)
	if err != nil {
		return nil, err
	}

	var out []Saving

	for _, sv := range savings {
		if sv.AccountID == accountID {
			out = append(out, sv)
		}
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Saving, error) {
	sv, err := s.repo.GetSaving(ctx, id)
	if err != nil {
		return nil, err
	}

	return &sv, nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Saving, error) {
	sv, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.InsertSaving(ctx, sv)
	if err != nil {
		return nil, fmt.Errorf("creating saving goal: %w", err)
	}

	return &created, nil
}

func (s *Service) Update(ctx context.Context, id int, params Params) (*Saving, error) {
	sv, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetSaving(ctx, id); err != nil {
		return nil, err
	}

	sv.ID = id

	if err := s.repo.SaveSaving(ctx, sv); err != nil {
		return nil, fmt.Errorf("updating saving goal: %w", err)
	}

	return &sv, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteSaving(ctx, id)
}

// Deposit adds amount to the goal. When the goal is tied to an account the
// deposit is also booked as a saving transaction on that account.
func (s *Service) Deposit(ctx context.Context, id int, amount decimal.Decimal, date time.Time) (*Saving, error) {
	if !amount.IsPositive() {
		return nil, validate.Invalid("amount", "gt", "0")
	}

	sv, err := s.repo.GetSaving(ctx, id)
	if err != nil {
		return nil, err
	}

	before := sv
	sv.CurrentAmount = sv.CurrentAmount.Add(amount)

	if err := s.repo.SaveSaving(ctx, sv); err != nil {
		return nil, fmt.Errorf("depositing to saving goal: %w", err)
	}

	if s.ledger != nil && sv.AccountID > 0 {
		if err := s.ledger.RecordDeposit(ctx, sv.AccountID, sv.Name, amount, date); err != nil {
			// Undo the goal change so the goal and the ledger stay in step.
			if rerr := s.repo.SaveSaving(ctx, before); rerr != nil {
				return nil, fmt.Errorf("recording deposit: %w (restoring goal: %v)", err, rerr)
			}

			return nil, fmt.Errorf("recording deposit: %w", err)
		}
	}

	return &sv, nil
}

// RemapAccounts follows an account renumbering. Goals of the deleted account
// are kept and detached.
func (s *Service) RemapAccounts(ctx context.Context, deleted int, moved map[int]int) error {
	return s.repo.UpdateSavings(ctx, func(sv *Saving) bool {
		if sv.AccountID == 0 {
			return false
		}

		if sv.AccountID == deleted {
			sv.AccountID = 0
			return true
		}

		if id, ok := moved[sv.AccountID]; ok {
			sv.AccountID = id
			return true
		}

		return false
	})
}

func fromParams(p Params) (Saving, error) {
	p.Name = strings.TrimSpace(p.Name)

	if err := validate.Struct(p); err != nil {
		return Saving{}, err
	}

	return Saving{
		Name:          p.Name,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		Deadline:      p.Deadline,
		AccountID:     p.AccountID,
	}, nil
}
