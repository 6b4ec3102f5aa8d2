package account

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("an account with this name and type already exists")
)

// Type is the kind of balance holder. Values are stored verbatim in accounts.csv.
type Type string

const (
	TypeBank    Type = "Tài khoản ngân hàng"
	TypeCash    Type = "Tiền mặt"
	TypeEWallet Type = "Ví điện tử"
)

// Types lists the account types in display order.
func Types() []Type {
	return []Type{TypeBank, TypeCash, TypeEWallet}
}

func (t Type) Valid() bool {
	switch t {
	case TypeBank, TypeCash, TypeEWallet:
		return true
	}

	return false
}

// Account is a named balance in VND.
type Account struct {
	ID      int
	Name    string
	Balance decimal.Decimal
	Type    Type
}
