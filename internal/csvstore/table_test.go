package csvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/csvstore"
)

type item struct {
	ID     int
	Name   string
	Amount decimal.Decimal
	Date   time.Time
}

var itemSchema = csvstore.Schema[item]{
	Columns: []string{"item_id", "name", "amount", "date"},
	ID:      func(i item) int { return i.ID },
	WithID: func(i item, id int) item {
		i.ID = id
		return i
	},
	Encode: func(i item) []string {
		return []string{
			csvstore.FormatInt(i.ID),
			i.Name,
			csvstore.FormatDecimal(i.Amount),
			csvstore.FormatDate(i.Date),
		}
	},
	Decode: func(r *csvstore.Row) item {
		return item{
			ID:     r.Int("item_id"),
			Name:   r.String("name"),
			Amount: r.Decimal("amount"),
			Date:   r.Date("date"),
		}
	},
}

func newTable(t *testing.T) *csvstore.Table[item] {
	t.Helper()
	return csvstore.NewTable(filepath.Join(t.TempDir(), "nested", "items.csv"), itemSchema)
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}

	return out
}

func ids(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}

	return out
}

func TestTable_LoadAll_MissingFile(t *testing.T) {
	tbl := newTable(t)

	got, err := tbl.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = tbl.Get(context.Background(), 1)
	assert.ErrorIs(t, err, csvstore.ErrNotFound)
}

func TestTable_SaveThenGet(t *testing.T) {
	ctx := context.Background()
	tbl := newTable(t)

	want := item{
		ID:     7,
		Name:   "Ví điện tử, MoMo",
		Amount: decimal.RequireFromString("1250000.5"),
		Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, tbl.Save(ctx, want))

	got, err := tbl.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.Amount.Equal(got.Amount))
	assert.True(t, want.Date.Equal(got.Date))
}

func TestTable_SaveReplacesAndSorts(t *testing.T) {
	ctx := context.Background()
	tbl := newTable(t)

	require.NoError(t, tbl.Save(ctx, item{ID: 3, Name: "c"}))
	require.NoError(t, tbl.Save(ctx, item{ID: 1, Name: "a"}))
	require.NoError(t, tbl.Save(ctx, item{ID: 2, Name: "b"}))
	require.NoError(t, tbl.Save(ctx, item{ID: 3, Name: "c2"}))

	got, err := tbl.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(got))
	assert.Equal(t, []string{"a", "b", "c2"}, names(got))
}

func TestTable_Insert(t *testing.T) {
	ctx := context.Background()
	tbl := newTable(t)

	require.NoError(t, tbl.Save(ctx, item{ID: 4, Name: "existing"}))

	created, err := tbl.Insert(ctx, item{Name: "x"}, item{Name: "y"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, ids(created))

	got, err := tbl.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"existing", "x", "y"}, names(got))
}

func TestTable_Delete(t *testing.T) {
	type testCase struct {
		name        string
		deleteID    int
		wantRemoved bool
		wantIDs     []int
		wantNames   []string
		wantMoved   map[int]int
	}

	tests := []testCase{
		{
			name:        "Middle",
			deleteID:    2,
			wantRemoved: true,
			wantIDs:     []int{1, 2, 3},
			wantNames:   []string{"a", "c", "d"},
			wantMoved:   map[int]int{3: 2, 4: 3},
		},
		{
			name:        "Last",
			deleteID:    4,
			wantRemoved: true,
			wantIDs:     []int{1, 2, 3},
			wantNames:   []string{"a", "b", "c"},
			wantMoved:   map[int]int{},
		},
		{
			name:        "First",
			deleteID:    1,
			wantRemoved: true,
			wantIDs:     []int{1, 2, 3},
			wantNames:   []string{"b", "c", "d"},
			wantMoved:   map[int]int{2: 1, 3: 2, 4: 3},
		},
		{
			name:        "Missing",
			deleteID:    9,
			wantRemoved: false,
			wantIDs:     []int{1, 2, 3, 4},
			wantNames:   []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tbl := newTable(t)

			_, err := tbl.Insert(ctx,
				item{Name: "a"}, item{Name: "b"}, item{Name: "c"}, item{Name: "d"})
			require.NoError(t, err)

			res, err := tbl.Delete(ctx, tt.deleteID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, res.Removed)

			if tt.wantMoved != nil {
				assert.Equal(t, tt.wantMoved, res.Moved)
			}

			got, err := tbl.LoadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got))
			assert.Equal(t, tt.wantNames, names(got))
		})
	}
}

func TestTable_Update(t *testing.T) {
	ctx := context.Background()
	tbl := newTable(t)

	_, err := tbl.Insert(ctx, item{Name: "a"}, item{Name: "b"})
	require.NoError(t, err)

	err = tbl.Update(ctx, func(items []item) ([]item, bool) {
		items[1].Name = "renamed"
		return items, true
	})
	require.NoError(t, err)

	got, err := tbl.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}

func TestTable_LoadAll_ColumnOrderAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	content := "\xEF\xBB\xBFname,date,item_id,amount\nTiền mặt,2024-02-01,2,5000.0\n\nVí,2024-02-03 10:00:00,1,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := csvstore.NewTable(path, itemSchema).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, "Tiền mặt", got[0].Name)
	assert.True(t, decimal.NewFromInt(5000).Equal(got[0].Amount))
	assert.True(t, got[1].Amount.IsZero())
	assert.Equal(t, "2024-02-03", csvstore.FormatDate(got[1].Date))
}

func TestTable_LoadAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "Missing id column",
			content: "name,amount\na,1\n",
			wantErr: `missing column "item_id"`,
		},
		{
			name:    "Bad amount",
			content: "item_id,name,amount\n1,a,abc\n",
			wantErr: "line 2",
		},
		{
			name:    "Bad date",
			content: "item_id,name,date\n1,a,05/01/2024\n",
			wantErr: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "items.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := csvstore.NewTable(path, itemSchema).LoadAll(context.Background())
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}

func TestTable_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTable(t).LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
