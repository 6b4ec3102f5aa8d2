package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	SaveAccount(ctx context.Context, a Account) error
	// DeleteAccount removes the account and returns the old->new ids of
	// every account renumbered by the delete.
	DeleteAccount(ctx context.Context, id int) (map[int]int, error)
}

// ReferenceUpdater is implemented by services that store account ids.
// deleted is the id that no longer exists; moved maps renumbered ids.
type ReferenceUpdater interface {
	RemapAccounts(ctx context.Context, deleted int, moved map[int]int) error
}

type Service struct {
	repo Repository
	refs []ReferenceUpdater
}

func NewService(repo Repository, refs ...ReferenceUpdater) *Service {
	return &Service{repo: repo, refs: refs}
}

type Params struct {
	Name    string          `validate:"notblank"`
	Balance decimal.Decimal `validate:"gte=0"`
	Type    Type            `validate:"enum"`
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.ID == id {
			return &a, nil
		}
	}

	return nil, ErrNotFound
}

// FindByName returns the first account with exactly this name.
func (s *Service) FindByName(ctx context.Context, name string) (*Account, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		if a.Name == name {
			return &a, nil
		}
	}

	return nil, ErrNotFound
}

func (s *Service) Create(ctx context.Context, params Params) (*Account, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	if duplicate(accounts, params, 0) {
		return nil, ErrDuplicate
	}

	maxID := 0
	for _, a := range accounts {
		maxID = max(maxID, a.ID)
	}

	acc := Account{
		ID:      maxID + 1,
		Name:    params.Name,
		Balance: params.Balance,
		Type:    params.Type,
	}
	if err := s.repo.SaveAccount(ctx, acc); err != nil {
		return nil, fmt.Errorf("saving account: %w", err)
	}

	return &acc, nil
}

func (s *Service) Update(ctx context.Context, id int, params Params) (*Account, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	found := false
	for _, a := range accounts {
		if a.ID == id {
			found = true
			break
		}
	}

	if !found {
		return nil, ErrNotFound
	}

	if duplicate(accounts, params, id) {
		return nil, ErrDuplicate
	}

	acc := Account{
		ID:      id,
		Name:    params.Name,
		Balance: params.Balance,
		Type:    params.Type,
	}
	if err := s.repo.SaveAccount(ctx, acc); err != nil {
		return nil, fmt.Errorf("saving account: %w", err)
	}

	return &acc, nil
}

// Delete removes the account. The remaining accounts are renumbered 1..N,
// so every registered ReferenceUpdater is told how ids moved.
func (s *Service) Delete(ctx context.Context, id int) error {
	moved, err := s.repo.DeleteAccount(ctx, id)
	if err != nil {
		return err
	}

	var errs []error

	for _, ref := range s.refs {
		if err := ref.RemapAccounts(ctx, id, moved); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("remapping account references: %w", err)
	}

	return nil
}

// duplicate reports whether another account already uses the name and type.
// Names are compared case-insensitively.
func duplicate(accounts []Account, params Params, exceptID int) bool {
	for _, a := range accounts {
		if a.ID == exceptID {
			continue
		}

		if a.Type == params.Type && strings.EqualFold(a.Name, params.Name) {
			return true
		}
	}

	return false
}
