package loan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	ListLoans(ctx context.Context) ([]Loan, error)
	GetLoan(ctx context.Context, id int) (Loan, error)
	SaveLoan(ctx context.Context, l Loan) error
	InsertLoan(ctx context.Context, l Loan) (Loan, error)
	DeleteLoan(ctx context.Context, id int) error
	UpdateLoans(ctx context.Context, fn func(l *Loan) bool) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a loan service. clock may be nil, in which case
// time.Now is used to derive due status.
func NewService(repo Repository, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{repo: repo, now: clock}
}

type Params struct {
	Type               Type            `validate:"enum"`
	LenderName         string          `validate:"notblank"`
	BorrowerName       string          `validate:"notblank"`
	DueDate            time.Time       `validate:"date"`
	RemainingPrincipal decimal.Decimal `validate:"gte=0"`
	Principal          decimal.Decimal `validate:"gte=0"`
	InterestRate       decimal.Decimal `validate:"gte=0"`
	StartDate          time.Time
	FromAccountID      int `validate:"gte=0"`
	ToAccountID        int `validate:"gte=0"`
}

// List returns all loans with their status derived for the current time.
func (s *Service) List(ctx context.Context) ([]Loan, error) {
	loans, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range loans {
		loans[i] = loans[i].CheckDueStatus(now)
	}

	return loans, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Loan, error) {
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	l = l.CheckDueStatus(s.now())

	return &l, nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Loan, error) {
	l, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	l.Status = StatusPending

	created, err := s.repo.InsertLoan(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("creating loan: %w", err)
	}

	created = created.CheckDueStatus(s.now())

	return &created, nil
}

// Update replaces the loan's fields. A loan that is not paid goes back to
// Pending so that a moved due date is re-evaluated.
func (s *Service) Update(ctx context.Context, id int, params Params) (*Loan, error) {
	l, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	l.ID = id
	l.Status = StatusPending

	if current.Status == StatusPaid && l.RemainingPrincipal.IsZero() {
		l.Status = StatusPaid
	}

	if err := s.repo.SaveLoan(ctx, l); err != nil {
		return nil, fmt.Errorf("updating loan: %w", err)
	}

	l = l.CheckDueStatus(s.now())

	return &l, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteLoan(ctx, id)
}

func (s *Service) MarkPaid(ctx context.Context, id int) (*Loan, error) {
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	l.Status = StatusPaid
	l.RemainingPrincipal = decimal.Zero

	if err := s.repo.SaveLoan(ctx, l); err != nil {
		return nil, fmt.Errorf("marking loan paid: %w", err)
	}

	return &l, nil
}

// Repay lowers the remaining principal. Paying off the rest marks the loan Paid.
func (s *Service) Repay(ctx context.Context, id int, amount decimal.Decimal) (*Loan, error) {
	if !amount.IsPositive() {
		return nil, validate.Invalid("amount", "gt", "0")
	}

	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.Status == StatusPaid {
		return nil, validate.Invalid("status", "not_paid", "")
	}

	if amount.GreaterThan(l.RemainingPrincipal) {
		return nil, validate.Invalid("amount", "lte", l.RemainingPrincipal.String())
	}

	l.RemainingPrincipal = l.RemainingPrincipal.Sub(amount)
	if l.RemainingPrincipal.IsZero() {
		l.Status = StatusPaid
	}

	if err := s.repo.SaveLoan(ctx, l); err != nil {
		return nil, fmt.Errorf("repaying loan: %w", err)
	}

	l = l.CheckDueStatus(s.now())

	return &l, nil
}

// RemapAccounts follows an account renumbering for the optional account links.
func (s *Service) RemapAccounts(ctx context.Context, deleted int, moved map[int]int) error {
	remap := func(id *int) bool {
		if *id == 0 {
			return false
		}

		if *id == deleted {
			*id = 0
			return true
		}

		if newID, ok := moved[*id]; ok {
			*id = newID
			return true
		}

		return false
	}

	return s.repo.UpdateLoans(ctx, func(l *Loan) bool {
		from := remap(&l.FromAccountID)
		to := remap(&l.ToAccountID)

		return from || to
	})
}

func fromParams(p Params) (Loan, error) {
	p.LenderName = strings.TrimSpace(p.LenderName)
	p.BorrowerName = strings.TrimSpace(p.BorrowerName)

	if err := validate.Struct(p); err != nil {
		return Loan{}, err
	}

	if !p.StartDate.IsZero() && p.DueDate.Before(p.StartDate) {
		return Loan{}, validate.Invalid("due_date", "gtefield", "start_date")
	}

	return Loan{
		Type:               p.Type,
		LenderName:         p.LenderName,
		BorrowerName:       p.BorrowerName,
		DueDate:            p.DueDate,
		RemainingPrincipal: p.RemainingPrincipal,
		Principal:          p.Principal,
		InterestRate:       p.InterestRate,
		StartDate:          p.StartDate,
		FromAccountID:      p.FromAccountID,
		ToAccountID:        p.ToAccountID,
	}, nil
}
