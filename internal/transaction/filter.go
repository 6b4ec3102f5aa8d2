package transaction

import (
	"slices"
)

// Selector scopes transactions to one account. The zero value selects all accounts.
type Selector struct {
	AccountID   int
	AccountName string
}

// AllAccounts selects every transaction unchanged.
var AllAccounts = Selector{}

func ForAccount(id int, name string) Selector {
	return Selector{AccountID: id, AccountName: name}
}

func (s Selector) All() bool {
	return s.AccountID == 0
}

// Filter returns the transactions relevant to the selected account with
// amounts signed from that account's point of view, sorted by date.
//
//   - Own income is positive, own expenses and saving deposits negative.
//   - Own transfers become TransferOut (negative) or TransferIn (positive)
//     depending on the category text; transfers naming neither side are dropped.
//   - Transfers on other accounts that name this account as receiver are
//     included as TransferIn on this account.
//
// With AllAccounts the input is returned as a copy in its original order.
func Filter(txs []Transaction, sel Selector) []Transaction {
	if sel.All() {
		return slices.Clone(txs)
	}

	out := make([]Transaction, 0, len(txs))

	for _, t := range txs {
		if t.AccountID == sel.AccountID {
			n, ok := normalizeOwn(t, sel.AccountName)
			if ok {
				out = append(out, n)
			}

			continue
		}

		if t.Type == TypeTransfer && ReceivedBy(t.Category, sel.AccountName) {
			t.Type = TypeTransferIn
			t.Amount = t.Amount.Abs()
			t.AccountID = sel.AccountID
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return out
}

func normalizeOwn(t Transaction, account string) (Transaction, bool) {
	if t.Type != TypeTransfer {
		if t.Type == TypeIncome {
			t.Amount = t.Amount.Abs()
		} else {
			t.Amount = t.Amount.Abs().Neg()
		}

		return t, true
	}

	switch TransferDirection(t.Category, account) {
	case DirectionOutgoing:
		t.Type = TypeTransferOut
		t.Amount = t.Amount.Abs().Neg()
	case DirectionIncoming:
		t.Type = TypeTransferIn
		t.Amount = t.Amount.Abs()
	default:
		return t, false
	}

	return t, true
}
