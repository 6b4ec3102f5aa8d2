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

	"github.com/MrJamesThe3rd/finman/internal/saving"
	"github.com/MrJamesThe3rd/finman/internal/saving/store"
)

func TestStore_InsertAndReadBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "savings.csv")
	s := store.New(path)

	_, err := s.InsertSaving(ctx, saving.Saving{
		Name:          "Mua xe",
		TargetAmount:  decimal.NewFromInt(30000000),
		CurrentAmount: decimal.NewFromInt(1500000),
		Deadline:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		AccountID:     2,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"saving_id,name,target_amount,current_amount,deadline,account_id\n"+
			"1,Mua xe,30000000,1500000,2025-12-31,2\n",
		string(raw))

	got, err := s.GetSaving(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mua xe", got.Name)
	assert.Equal(t, 2, got.AccountID)
}

func TestStore_DeleteMissing(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "savings.csv"))

	err := s.DeleteSaving(context.Background(), 1)
	assert.ErrorIs(t, err, saving.ErrNotFound)
}

func TestStore_UpdateSavings(t *testing.T) {
	ctx := context.Background()
	s := store.New(filepath.Join(t.TempDir(), "savings.csv"))

	for _, name := range []string{"A", "B"} {
		_, err := s.InsertSaving(ctx, saving.Saving{Name: name, TargetAmount: decimal.NewFromInt(1), AccountID: 1})
		require.NoError(t, err)
	}

	err := s.UpdateSavings(ctx, func(sv *saving.Saving) bool {
		if sv.Name != "B" {
			return false
		}

		sv.AccountID = 0

		return true
	})
	require.NoError(t, err)

	all, err := s.ListSavings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, all[0].AccountID)
	assert.Equal(t, 0, all[1].AccountID)
}
