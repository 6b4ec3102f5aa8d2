package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("loan not found")

// Type says which side of the loan the user is on.
type Type string

const (
	TypeBorrow Type = "Vay tiền"
	TypeLend   Type = "Cho vay"
)

func Types() []Type {
	return []Type{TypeBorrow, TypeLend}
}

func (t Type) Valid() bool {
	return t == TypeBorrow || t == TypeLend
}

type Status string

const (
	StatusPending Status = "Chưa trả"
	StatusOverdue Status = "Quá hạn"
	StatusPaid    Status = "Đã trả"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusPaid:
		return true
	}

	return false
}

// Loan is an obligation between two named parties. The parties are plain
// names and are matched against account names by equality.
type Loan struct {
	ID                 int
	Type               Type
	LenderName         string
	BorrowerName       string
	DueDate            time.Time
	RemainingPrincipal decimal.Decimal
	Status             Status

	Principal     decimal.Decimal
	InterestRate  decimal.Decimal
	StartDate     time.Time
	FromAccountID int
	ToAccountID   int
}

// CheckDueStatus returns the loan with its status derived for now: an unpaid
// loan is Overdue once now is past midnight of the due date. Paid loans and
// loans without a due date are returned unchanged.
func (l Loan) CheckDueStatus(now time.Time) Loan {
	if l.Status == StatusPaid || l.DueDate.IsZero() {
		return l
	}

	if now.After(dueMidnight(l.DueDate, now.Location())) {
		l.Status = StatusOverdue
	}

	return l
}

// DaysUntilDue counts calendar days from now's date to the due date.
// It is negative for past due dates.
func (l Loan) DaysUntilDue(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(l.DueDate.Year(), l.DueDate.Month(), l.DueDate.Day(), 0, 0, 0, 0, time.UTC)

	return int(due.Sub(today).Hours() / 24)
}

// MatchesAccount reports whether the account named name is the user's side
// of the loan: the borrower of a Borrow loan or the lender of a Lend loan.
func (l Loan) MatchesAccount(name string) bool {
	switch l.Type {
	case TypeBorrow:
		return l.BorrowerName == name
	case TypeLend:
		return l.LenderName == name
	}

	return false
}

func dueMidnight(due time.Time, loc *time.Location) time.Time {
	return time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, loc)
}
