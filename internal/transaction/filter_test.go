package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func amt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Accounts: 1 = "Vietcombank", 2 = "Tiền mặt", 3 = "MoMo".
func sample() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: 1, Date: day(2024, 1, 10), Type: transaction.TypeExpense, Amount: amt(400), AccountID: 1},
		{ID: 2, Date: day(2024, 1, 5), Type: transaction.TypeIncome, Amount: amt(1000), AccountID: 1},
		{ID: 3, Date: day(2024, 1, 7), Type: transaction.TypeTransfer, Amount: amt(300), AccountID: 1,
			Category: transaction.TransferCategory("Vietcombank", "Tiền mặt")},
		{ID: 4, Date: day(2024, 1, 8), Type: transaction.TypeTransfer, Amount: amt(50), AccountID: 3,
			Category: transaction.TransferCategory("MoMo", "Vietcombank")},
		{ID: 5, Date: day(2024, 1, 9), Type: transaction.TypeSaving, Amount: amt(100), AccountID: 1},
		{ID: 6, Date: day(2024, 1, 1), Type: transaction.TypeTransfer, Amount: amt(70), AccountID: 1,
			Category: "Chuyển tiền"},
		{ID: 7, Date: day(2024, 1, 2), Type: transaction.TypeExpense, Amount: amt(20), AccountID: 2},
	}
}

func TestFilter_AllAccountsIsIdentity(t *testing.T) {
	in := sample()

	got := transaction.Filter(in, transaction.AllAccounts)
	assert.Equal(t, in, got)

	got[0].Amount = amt(1)
	assert.True(t, in[0].Amount.Equal(amt(400)), "input must not be shared")
}

func TestFilter_SpecificAccount(t *testing.T) {
	in := sample()

	got := transaction.Filter(in, transaction.ForAccount(1, "Vietcombank"))
	require.Len(t, got, 5)

	type view struct {
		ID     int
		Type   transaction.Type
		Amount string
	}

	views := make([]view, len(got))
	for i, tx := range got {
		assert.Equal(t, 1, tx.AccountID)
		views[i] = view{tx.ID, tx.Type, tx.Amount.String()}
	}

	assert.Equal(t, []view{
		{2, transaction.TypeIncome, "1000"},
		{3, transaction.TypeTransferOut, "-300"},
		{4, transaction.TypeTransferIn, "50"},
		{5, transaction.TypeSaving, "-100"},
		{1, transaction.TypeExpense, "-400"},
	}, views)

	assert.True(t, in[2].Amount.Equal(amt(300)), "input must not be mutated")
	assert.Equal(t, transaction.TypeTransfer, in[2].Type)
}

func TestFilter_IncomingOnOwnAccount(t *testing.T) {
	in := []transaction.Transaction{
		{ID: 1, Date: day(2024, 3, 1), Type: transaction.TypeTransfer, Amount: amt(-80), AccountID: 2,
			Category: transaction.TransferCategory("Vietcombank", "Tiền mặt")},
	}

	got := transaction.Filter(in, transaction.ForAccount(2, "Tiền mặt"))
	require.Len(t, got, 1)
	assert.Equal(t, transaction.TypeTransferIn, got[0].Type)
	assert.Equal(t, "80", got[0].Amount.String())
}

func TestFilter_SignsFollowDirection(t *testing.T) {
	for _, sel := range []transaction.Selector{
		transaction.ForAccount(1, "Vietcombank"),
		transaction.ForAccount(2, "Tiền mặt"),
		transaction.ForAccount(3, "MoMo"),
	} {
		for _, tx := range transaction.Filter(sample(), sel) {
			switch tx.Type {
			case transaction.TypeIncome, transaction.TypeTransferIn:
				assert.True(t, tx.Amount.IsPositive(), "tx %d for %s", tx.ID, sel.AccountName)
			case transaction.TypeExpense, transaction.TypeSaving, transaction.TypeTransferOut:
				assert.True(t, tx.Amount.IsNegative(), "tx %d for %s", tx.ID, sel.AccountName)
			default:
				t.Errorf("unexpected type %q", tx.Type)
			}
		}
	}
}

func TestFilter_UnknownAccount(t *testing.T) {
	got := transaction.Filter(sample(), transaction.ForAccount(42, "Không có"))
	assert.Empty(t, got)
}

func TestTransferDirection(t *testing.T) {
	tests := []struct {
		name     string
		category string
		account  string
		want     transaction.Direction
	}{
		{"Outgoing", transaction.TransferCategory("A", "B"), "A", transaction.DirectionOutgoing},
		{"Incoming", transaction.TransferCategory("A", "B"), "B", transaction.DirectionIncoming},
		{"Neither", transaction.TransferCategory("A", "B"), "C", transaction.DirectionUnknown},
		{"PlainText", "Chuyển tiền", "A", transaction.DirectionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.TransferDirection(tt.category, tt.account))
		})
	}

	assert.Equal(t, "Chuyển tiền từ A đến B", transaction.TransferCategory("A", "B"))
}

func TestTransaction_Signed(t *testing.T) {
	tests := []struct {
		typ  transaction.Type
		in   int64
		want string
	}{
		{transaction.TypeIncome, -5, "5"},
		{transaction.TypeExpense, 5, "-5"},
		{transaction.TypeSaving, 5, "-5"},
		{transaction.TypeTransferOut, -5, "-5"},
		{transaction.TypeTransferIn, 5, "5"},
	}

	for _, tt := range tests {
		tx := transaction.Transaction{Type: tt.typ, Amount: amt(tt.in)}
		assert.Equal(t, tt.want, tx.Signed().String(), string(tt.typ))
	}
}
