package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/matching"
	"github.com/MrJamesThe3rd/finman/internal/matching/store"
)

func TestStore_LearnAndSuggest(t *testing.T) {
	ctx := context.Background()
	svc := matching.NewService(store.New(filepath.Join(t.TempDir(), "category_rules.csv")))

	_, err := svc.Learn(ctx, "grab", "Đi lại")
	require.NoError(t, err)

	_, err = svc.Learn(ctx, "grabfood", "Ăn uống")
	require.NoError(t, err)

	_, err = svc.Learn(ctx, "Grab", "Taxi")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Taxi", all[0].Category)

	got, err := svc.Suggest(ctx, "GRABFOOD 123")
	require.NoError(t, err)
	assert.Equal(t, "Ăn uống", got)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 9), matching.ErrNotFound)
}
