package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/transaction"
	"github.com/MrJamesThe3rd/finman/internal/transaction/store"
)

func TestStore_SaveThenGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	s := store.New(path)

	want := transaction.Transaction{
		ID:        3,
		Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Type:      transaction.TypeTransfer,
		Amount:    decimal.NewFromInt(250000),
		Category:  transaction.TransferCategory("Tiền mặt", "Vietcombank"),
		AccountID: 2,
		Note:      "nạp tiền, tháng 1",
	}
	require.NoError(t, s.SaveTransaction(ctx, want))

	got, err := s.GetTransaction(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.Type, got.Type)
	assert.True(t, want.Amount.Equal(got.Amount))
	assert.Equal(t, want.Category, got.Category)
	assert.Equal(t, want.AccountID, got.AccountID)
	assert.Equal(t, want.Note, got.Note)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "transaction_id,date,type,amount,category,account_id,note\n")
	assert.Contains(t, string(raw), `"nạp tiền, tháng 1"`)

	_, err = s.GetTransaction(ctx, 99)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestStore_KeepsSurroundingWhitespace(t *testing.T) {
	ctx := context.Background()
	s := store.New(filepath.Join(t.TempDir(), "transactions.csv"))

	want := transaction.Transaction{
		ID:        1,
		Date:      time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Type:      transaction.TypeExpense,
		Amount:    decimal.NewFromInt(45000),
		Category:  "Ăn uống ",
		AccountID: 1,
		Note:      "  chợ  ",
	}
	require.NoError(t, s.SaveTransaction(ctx, want))

	got, err := s.GetTransaction(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ăn uống ", got.Category)
	assert.Equal(t, "  chợ  ", got.Note)
	assert.Equal(t, transaction.TypeExpense, got.Type)
}

func TestStore_InsertUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := store.New(filepath.Join(t.TempDir(), "transactions.csv"))

	created, err := s.InsertTransactions(ctx, []transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(1), AccountID: 1},
		{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(2), AccountID: 2},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 1, created[0].ID)
	assert.Equal(t, 2, created[1].ID)

	err = s.UpdateTransactions(ctx, func(tx *transaction.Transaction) bool {
		if tx.AccountID != 2 {
			return false
		}

		tx.AccountID = 1

		return true
	})
	require.NoError(t, err)

	got, err := s.GetTransaction(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AccountID)

	require.NoError(t, s.DeleteTransaction(ctx, 1))
	assert.ErrorIs(t, s.DeleteTransaction(ctx, 5), transaction.ErrNotFound)

	all, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, transaction.TypeExpense, all[0].Type)
}
