package ledger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finman/internal/importer/ledger"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

func TestParser_Parse(t *testing.T) {
	csv := `transaction_id,date,type,amount,category,account_id,note
1,2025-03-01,Thu nhập,15000000,Lương,1,Lương tháng 3
2,2025-03-02,Chi tiêu,45000,Ăn uống,1,
3,2025-03-03,Chuyển tiền,500000,Chuyển tiền từ VCB đến Momo,1,
4,2025-03-04,Gửi tiết kiệm,1000000,Mua xe,2,
`

	params, err := ledger.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), params[0].Date)
	assert.Equal(t, transaction.TypeIncome, params[0].Type)
	assert.Equal(t, "15000000", params[0].Amount.String())
	assert.Equal(t, "Lương", params[0].Category)
	assert.Equal(t, "Lương tháng 3", params[0].Note)
	assert.Zero(t, params[0].AccountID)

	assert.Equal(t, transaction.TypeExpense, params[1].Type)
	assert.Equal(t, transaction.TypeSaving, params[2].Type)
}

func TestParser_MissingIDColumn(t *testing.T) {
	_, err := ledger.NewParser().Parse(strings.NewReader("date,type\n2025-03-01,Thu nhập\n"))
	assert.Error(t, err)
}

func TestParser_Empty(t *testing.T) {
	params, err := ledger.NewParser().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, params)
}
