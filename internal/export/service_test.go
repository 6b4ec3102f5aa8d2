package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/export"
	"github.com/MrJamesThe3rd/finman/internal/report"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type stubBuilder struct {
	rep *report.Report
	err error
	got string
}

func (s *stubBuilder) Build(_ context.Context, accountName string) (*report.Report, error) {
	s.got = accountName
	return s.rep, s.err
}

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func sampleReport() *report.Report {
	txs := []transaction.Transaction{
		{ID: 1, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Type: transaction.TypeIncome, Amount: amt(1500000), Category: "Lương", AccountID: 1, Note: "Tháng 1"},
		{ID: 2, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Type: transaction.TypeExpense, Amount: amt(-400000), Category: "Ăn uống", AccountID: 1},
		{ID: 3, Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Type: transaction.TypeSaving, Amount: amt(-100000), Category: "Mua xe", AccountID: 1},
	}

	return &report.Report{
		Account:      "Vietcombank",
		Found:        true,
		Transactions: txs,
		AccountNames: map[int]string{1: "Vietcombank"},
		Categories:   report.Categories(txs),
		Totals:       report.TotalsOf(txs),
		Assets: report.AssetSnapshot{
			Items: []report.AssetItem{
				{Kind: report.AssetKindAccount, Name: "Vietcombank", Amount: amt(5000000)},
				{Kind: "Cho vay", Name: "Vietcombank -> Minh", Amount: amt(2000000)},
			},
			NetWorth: amt(7000000),
		},
	}
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()

	got, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	return got
}

func TestService_Export(t *testing.T) {
	builder := &stubBuilder{rep: sampleReport()}
	svc := export.NewService(builder)

	path := filepath.Join(t.TempDir(), "nested", "bao_cao")

	res, err := svc.Export(context.Background(), "Vietcombank", path)
	require.NoError(t, err)

	assert.Equal(t, "Vietcombank", builder.got)
	assert.Equal(t, path+".xlsx", res.Path)
	assert.Equal(t, 3, res.Transactions)
	assert.NotEmpty(t, res.ID)

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, export.Sheets(), f.GetSheetList())

	tx := rows(t, f, export.SheetTransactions)
	require.Len(t, tx, 4)
	assert.Equal(t, []string{"Ngày", "Loại", "Số Tiền", "Danh Mục", "Tài Khoản", "Ghi Chú"}, tx[0])
	assert.Equal(t, []string{"2024-01-05", "Thu nhập", "1500000", "Lương", "Vietcombank", "Tháng 1"}, tx[1])
	assert.Equal(t, "-400000", tx[2][2])

	summary := rows(t, f, export.SheetSummary)
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Chênh lệch", "1000000"}, summary[4])

	cats := rows(t, f, export.SheetCategories)
	require.Len(t, cats, 4)
	assert.Equal(t, []string{"Chi tiêu", "Ăn uống", "400000", "100"}, cats[1])
	assert.Equal(t, "Tiết kiệm", cats[3][0])

	assets := rows(t, f, export.SheetAssets)
	require.Len(t, assets, 3)
	assert.Equal(t, []string{"Cho vay", "Vietcombank -> Minh", "2000000"}, assets[2])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, res.ID.String(), props.Identifier)
}

func TestService_Export_MoneyStyle(t *testing.T) {
	svc := export.NewService(&stubBuilder{rep: sampleReport()})

	res, err := svc.Export(context.Background(), "Vietcombank", filepath.Join(t.TempDir(), "out.xlsx"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	defer f.Close()

	formatted, err := f.GetCellValue(export.SheetTransactions, "C2")
	require.NoError(t, err)
	assert.Equal(t, "1,500,000", formatted)

	header, err := f.GetCellStyle(export.SheetTransactions, "A1")
	require.NoError(t, err)

	style, err := f.GetStyle(header)
	require.NoError(t, err)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "center", style.Alignment.Horizontal)
}

func TestService_Export_Errors(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		_, err := export.NewService(&stubBuilder{rep: sampleReport()}).Export(context.Background(), "", "  ")
		assert.ErrorIs(t, err, export.ErrEmptyPath)
	})

	t.Run("BuildFails", func(t *testing.T) {
		builder := &stubBuilder{err: errors.New("broken accounts.csv")}

		_, err := export.NewService(builder).Export(context.Background(), "", filepath.Join(t.TempDir(), "x.xlsx"))
		assert.ErrorContains(t, err, "building report")
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.xlsx")
		builder := &stubBuilder{rep: &report.Report{Account: "Techcombank"}}

		_, err := export.NewService(builder).Export(context.Background(), "Techcombank", path)
		assert.ErrorIs(t, err, account.ErrNotFound)
		assert.NoFileExists(t, path)
	})

	t.Run("UnwritableDirectory", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := export.NewService(&stubBuilder{rep: sampleReport()}).
			Export(context.Background(), "", filepath.Join(blocker, "out.xlsx"))
		assert.Error(t, err)
	})
}

func TestWrite_EmptyReport(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.Write(&buf, &report.Report{Account: report.AllAccountsLabel}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	tx := rows(t, f, export.SheetTransactions)
	require.Len(t, tx, 1)

	summary := rows(t, f, export.SheetSummary)
	assert.Equal(t, []string{"Tổng thu nhập", "0"}, summary[1])
}

func TestGenerateSummary(t *testing.T) {
	svc := export.NewService(nil)

	out := svc.GenerateSummary(&export.Result{
		Path:         "/tmp/bao_cao.xlsx",
		Account:      "Vietcombank",
		Transactions: 3,
		Totals:       report.Totals{Income: amt(1500000), Difference: amt(-250000)},
		NetWorth:     amt(7000000),
	})

	assert.True(t, strings.HasPrefix(out, "Đã xuất báo cáo: /tmp/bao_cao.xlsx\n"))
	assert.Contains(t, out, "Tổng thu nhập: 1,500,000 VND")
	assert.Contains(t, out, "Chênh lệch: -250,000 VND")
	assert.Contains(t, out, "Tài sản ròng: 7,000,000 VND")
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "bao_cao_tat_ca_20240309.xlsx", export.DefaultFileName(report.AllAccountsLabel, now))
	assert.Equal(t, "bao_cao_Tiền_mặt_20240309.xlsx", export.DefaultFileName("Tiền mặt", now))
}
