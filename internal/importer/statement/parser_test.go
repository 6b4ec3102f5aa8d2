package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/finman/internal/importer/statement"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func vnd(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestParser_BankStatement(t *testing.T) {
	csv := `SAO KÊ TÀI KHOẢN;
Chủ tài khoản;NGUYEN VAN A
Số tài khoản;0123456789
Từ ngày;01/03/2025
Đến ngày;31/03/2025

STT;Ngày giao dịch;Mô tả;Số tiền ghi nợ;Số tiền ghi có;Số dư
1;05/03/2025;THANH TOAN DIEN EVN;1.250.000;;8.750.000
2;10/03/2025;LUONG THANG 3;;15.000.000;23.750.000
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2025, 3, 5), txs[0].Date)
	assert.Equal(t, "THANH TOAN DIEN EVN", txs[0].Note)
	assert.True(t, vnd(1250000).Equal(txs[0].Amount))
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, date(2025, 3, 10), txs[1].Date)
	assert.Equal(t, "LUONG THANG 3", txs[1].Note)
	assert.True(t, vnd(15000000).Equal(txs[1].Amount))
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_EWalletCommaDelimited(t *testing.T) {
	csv := `Thời gian,Nội dung,Số tiền
"12/04/2025 08:15:00",Nạp tiền điện thoại,"-100,000đ"
"13/04/2025 19:40:12",Nhận tiền từ bạn,"+250,000đ"
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2025, 4, 12), txs[0].Date)
	assert.True(t, vnd(100000).Equal(txs[0].Amount))
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, "Nhận tiền từ bạn", txs[1].Note)
	assert.True(t, vnd(250000).Equal(txs[1].Amount))
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_CreditOnlyRow(t *testing.T) {
	csv := `Ngày;Nội dung;Ghi nợ;Ghi có
16/12/2025;HOAN TIEN SHOPEE;  ;25.000
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.True(t, vnd(25000).Equal(txs[0].Amount))
	assert.Equal(t, transaction.TypeIncome, txs[0].Type)
}

func TestParser_HeaderCaseInsensitive(t *testing.T) {
	csv := "DATE\tDESCRIPTION\tAMOUNT\n2025-05-01\tCoffee\t-45000\n"

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "Coffee", txs[0].Note)
	assert.True(t, vnd(45000).Equal(txs[0].Amount))
}

func TestParser_Windows1258(t *testing.T) {
	utf8CSV := "Date;Description;Amount\n30/01/2025;Cà phê;-30.000\n"

	encoded, err := charmap.Windows1258.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	txs, err := statement.NewParser("windows-1258").Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "Cà phê", txs[0].Note)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Date;Description;Amount\n30/01/2025;CAFÉ CENTRAL;-10.000\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	txs, err := statement.NewParser("").Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "CAFÉ CENTRAL", txs[0].Note)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random;MetaData
Số tiền;Nội dung;Ngày giao dịch;Ignored
-10.000;TEST_ORDER;30/01/2025;XXX
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "TEST_ORDER", txs[0].Note)
	assert.True(t, vnd(10000).Equal(txs[0].Amount))
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := statement.NewParser("").Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, statement.ErrUnknownFormat)
}

func TestParser_UnknownCharset(t *testing.T) {
	_, err := statement.NewParser("klingon").Parse(strings.NewReader("x"))
	assert.Error(t, err)
}

func TestParser_HeaderOnly(t *testing.T) {
	csv := `Ngày giao dịch;Nội dung;Số tiền`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `Ngày giao dịch;Nội dung;Số tiền
30/01/2025;;-10.000
`

	_, err := statement.NewParser("").Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "description")
}

func TestParser_CategoryLeftBlank(t *testing.T) {
	csv := `Ngày giao dịch;Nội dung;Số tiền
30/01/2025;TEST;-10.000
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Empty(t, txs[0].Category)
	assert.Zero(t, txs[0].AccountID)
}

func TestParser_LargeAmounts(t *testing.T) {
	csv := `Ngày giao dịch;Nội dung;Số tiền
30/01/2025;MUA NHA;-1.234.567.890 VND
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.True(t, vnd(1234567890).Equal(txs[0].Amount))
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `Ngày giao dịch;Nội dung;Số tiền
30/01/2025;TEST;-10.000
Tổng cộng;;;;
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)
}
