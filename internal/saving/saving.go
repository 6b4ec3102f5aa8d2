package saving

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("saving goal not found")

var hundred = decimal.NewFromInt(100)

// Saving is a goal funded from an account. AccountID is 0 when the goal is
// not tied to any account.
type Saving struct {
	ID            int
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	AccountID     int
}

// Progress is current/target as a percentage. It is not clamped, so an
// over-funded goal reports more than 100. A zero target reports 0.
func (s Saving) Progress() decimal.Decimal {
	if s.TargetAmount.IsZero() {
		return decimal.Zero
	}

	return s.CurrentAmount.Mul(hundred).Div(s.TargetAmount)
}

// Remaining is what is still missing to reach the target, never negative.
func (s Saving) Remaining() decimal.Decimal {
	rest := s.TargetAmount.Sub(s.CurrentAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}

	return rest
}

func (s Saving) Reached() bool {
	return !s.TargetAmount.IsZero() && s.CurrentAmount.GreaterThanOrEqual(s.TargetAmount)
}
