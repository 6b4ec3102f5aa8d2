package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finman/internal/report"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

// Built-in number formats.
const (
	numFmtShare = 2 // 0.00
	numFmtMoney = 3 // #,##0
)

type column struct {
	header string
	width  float64
}

type workbook struct {
	f *excelize.File

	header int
	money  int
	share  int
}

func (w *workbook) init() error {
	var err error

	w.header, err = w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	w.money, err = w.f.NewStyle(&excelize.Style{
		NumFmt:    numFmtMoney,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	w.share, err = w.f.NewStyle(&excelize.Style{NumFmt: numFmtShare})
	if err != nil {
		return fmt.Errorf("creating share style: %w", err)
	}

	sheets := Sheets()

	if err := w.f.SetSheetName("Sheet1", sheets[0]); err != nil {
		return fmt.Errorf("renaming first sheet: %w", err)
	}

	for _, name := range sheets[1:] {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	w.f.SetActiveSheet(0)

	return nil
}

func (w *workbook) transactions(sheet string, rep *report.Report) error {
	cols := []column{
		{"Ngày", 15},
		{"Loại", 15},
		{"Số Tiền", 15},
		{"Danh Mục", 20},
		{"Tài Khoản", 20},
		{"Ghi Chú", 30},
	}

	if err := w.writeHeader(sheet, cols); err != nil {
		return err
	}

	for i, t := range rep.Transactions {
		row := []any{
			t.Date.Format("2006-01-02"),
			string(t.Type),
			t.Amount.InexactFloat64(),
			t.Category,
			rep.AccountName(t),
			t.Note,
		}
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}

	return w.styleColumn(sheet, "C", len(rep.Transactions), w.money)
}

func (w *workbook) summary(sheet string, rep *report.Report) error {
	cols := []column{
		{"Chỉ số", 20},
		{"Số tiền (VND)", 20},
	}

	if err := w.writeHeader(sheet, cols); err != nil {
		return err
	}

	tot := rep.Totals
	rows := [][]any{
		{"Tổng thu nhập", tot.Income.InexactFloat64()},
		{"Tổng chi tiêu", tot.Expense.InexactFloat64()},
		{"Tổng tiết kiệm", tot.Savings.InexactFloat64()},
		{"Chênh lệch", tot.Difference.InexactFloat64()},
	}

	for i, row := range rows {
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}

	return w.styleColumn(sheet, "B", len(rows), w.money)
}

func (w *workbook) categories(sheet string, rep *report.Report) error {
	cols := []column{
		{"Loại", 20},
		{"Danh Mục", 20},
		{"Số Tiền", 15},
		{"Tỷ Lệ", 10},
	}

	if err := w.writeHeader(sheet, cols); err != nil {
		return err
	}

	for i, c := range rep.Categories {
		row := []any{categoryLabel(c.Type), c.Category, c.Amount.InexactFloat64(), c.Share.InexactFloat64()}
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := w.styleColumn(sheet, "C", len(rep.Categories), w.money); err != nil {
		return err
	}

	return w.styleColumn(sheet, "D", len(rep.Categories), w.share)
}

func (w *workbook) assets(sheet string, rep *report.Report) error {
	cols := []column{
		{"Loại", 30},
		{"Tên", 30},
		{"Số Dư", 15},
	}

	if err := w.writeHeader(sheet, cols); err != nil {
		return err
	}

	for i, item := range rep.Assets.Items {
		row := []any{item.Kind, item.Name, item.Amount.InexactFloat64()}
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}

	return w.styleColumn(sheet, "C", len(rep.Assets.Items), w.money)
}

func (w *workbook) writeHeader(sheet string, cols []column) error {
	headers := make([]any, len(cols))

	for i, c := range cols {
		headers[i] = c.header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := w.f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", name, err)
		}
	}

	if err := w.writeRow(sheet, 1, headers); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}

	return w.f.SetCellStyle(sheet, "A1", last, w.header)
}

func (w *workbook) writeRow(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}

	return nil
}

// styleColumn applies style to the n data rows below the header of col.
func (w *workbook) styleColumn(sheet, col string, n, style int) error {
	if n == 0 {
		return nil
	}

	return w.f.SetCellStyle(sheet, col+"2", fmt.Sprintf("%s%d", col, n+1), style)
}

func categoryLabel(t transaction.Type) string {
	if t == transaction.TypeSaving {
		return "Tiết kiệm"
	}

	return string(t)
}
