package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the kind of transaction. Values are stored verbatim in
// transactions.csv.
type Type string

const (
	TypeIncome   Type = "Thu nhập"
	TypeExpense  Type = "Chi tiêu"
	TypeSaving   Type = "Gửi tiết kiệm"
	TypeTransfer Type = "Chuyển tiền"

	// TypeTransferOut and TypeTransferIn only appear in account-filtered
	// results and are never persisted.
	TypeTransferOut Type = "Chuyển tiền đi"
	TypeTransferIn  Type = "Chuyển tiền đến"
)

// Types lists the persisted transaction types in display order.
func Types() []Type {
	return []Type{TypeIncome, TypeExpense, TypeSaving, TypeTransfer}
}

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeSaving, TypeTransfer:
		return true
	}

	return false
}

// Transaction represents a dated money movement on one account.
// Amount is stored unsigned; the sign follows from Type.
type Transaction struct {
	ID        int
	Date      time.Time
	Type      Type
	Amount    decimal.Decimal
	Category  string
	AccountID int
	Note      string
}

// Month returns the YYYY-MM bucket of the transaction date.
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// Signed returns the amount with the sign implied by the type: income is
// positive, expenses and saving deposits negative, anything else as stored.
func (t Transaction) Signed() decimal.Decimal {
	switch t.Type {
	case TypeIncome:
		return t.Amount.Abs()
	case TypeExpense, TypeSaving:
		return t.Amount.Abs().Neg()
	}

	return t.Amount
}
