package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/report"
)

const (
	SheetTransactions = "Giao Dịch"
	SheetSummary      = "Thống Kê Thu Chi"
	SheetCategories   = "Chi Tiêu Theo Danh Mục"
	SheetAssets       = "Tài Sản"

	Extension = ".xlsx"
)

var ErrEmptyPath = errors.New("export path is empty")

// Sheets lists the workbook sheets in order.
func Sheets() []string {
	return []string{SheetTransactions, SheetSummary, SheetCategories, SheetAssets}
}

// ReportBuilder assembles the report for an account name.
type ReportBuilder interface {
	Build(ctx context.Context, accountName string) (*report.Report, error)
}

// Result describes a written workbook.
type Result struct {
	ID           uuid.UUID
	Path         string
	Account      string
	Transactions int
	Totals       report.Totals
	NetWorth     decimal.Decimal
	CreatedAt    time.Time
}

// Service writes reports to spreadsheet workbooks.
type Service struct {
	reports ReportBuilder
	now     func() time.Time
}

// NewService creates a new export service.
func NewService(reports ReportBuilder) *Service {
	return &Service{reports: reports, now: time.Now}
}

// Export builds the report for accountName and saves it as a workbook at
// path. A path without extension gets ".xlsx"; missing directories are created.
// An unknown account yields account.ErrNotFound and no file.
func (s *Service) Export(ctx context.Context, accountName, path string) (*Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptyPath
	}

	if filepath.Ext(path) == "" {
		path += Extension
	}

	rep, err := s.reports.Build(ctx, accountName)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	if !rep.Found {
		return nil, fmt.Errorf("exporting %q: %w", rep.Account, account.ErrNotFound)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	res := &Result{
		ID:           uuid.New(),
		Path:         path,
		Account:      rep.Account,
		Transactions: len(rep.Transactions),
		Totals:       rep.Totals,
		NetWorth:     rep.Assets.NetWorth,
		CreatedAt:    s.now(),
	}

	f, err := newWorkbook(rep, res)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("saving workbook: %w", err)
	}

	return res, nil
}

// Stream builds the report for accountName and writes the workbook to w.
// The report is returned so callers can tell whether the account exists.
func (s *Service) Stream(ctx context.Context, accountName string, w io.Writer) (*report.Report, error) {
	rep, err := s.reports.Build(ctx, accountName)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	if !rep.Found {
		return rep, nil
	}

	return rep, Write(w, rep)
}

// Write streams the workbook for rep to w.
func Write(w io.Writer, rep *report.Report) error {
	f, err := newWorkbook(rep, &Result{ID: uuid.New(), Account: rep.Account, CreatedAt: time.Now()})
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// DefaultFileName names an export of accountName made at now.
func DefaultFileName(accountName string, now time.Time) string {
	if accountName == "" || accountName == report.AllAccountsLabel {
		accountName = "tat_ca"
	}

	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}

		return r
	}, accountName)

	return fmt.Sprintf("bao_cao_%s_%s%s", safe, now.Format("20060102"), Extension)
}

// GenerateSummary creates a short text description of an export.
func (s *Service) GenerateSummary(res *Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Đã xuất báo cáo: %s\n", res.Path)
	fmt.Fprintf(&sb, "Tài khoản: %s\n", res.Account)
	fmt.Fprintf(&sb, "Số giao dịch: %d\n", res.Transactions)
	fmt.Fprintf(&sb, "Tổng thu nhập: %s VND\n", Money(res.Totals.Income))
	fmt.Fprintf(&sb, "Tổng chi tiêu: %s VND\n", Money(res.Totals.Expense))
	fmt.Fprintf(&sb, "Tổng tiết kiệm: %s VND\n", Money(res.Totals.Savings))
	fmt.Fprintf(&sb, "Chênh lệch: %s VND\n", Money(res.Totals.Difference))
	fmt.Fprintf(&sb, "Tài sản ròng: %s VND\n", Money(res.NetWorth))

	return sb.String()
}

// Money formats an amount with thousands separators and no decimals.
func Money(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart())
}

func newWorkbook(rep *report.Report, res *Result) (*excelize.File, error) {
	f := excelize.NewFile()

	w := &workbook{f: f}
	if err := w.init(); err != nil {
		f.Close()
		return nil, err
	}

	steps := []struct {
		sheet string
		fill  func(string, *report.Report) error
	}{
		{SheetTransactions, w.transactions},
		{SheetSummary, w.summary},
		{SheetCategories, w.categories},
		{SheetAssets, w.assets},
	}

	for _, step := range steps {
		if err := step.fill(step.sheet, rep); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing sheet %s: %w", step.sheet, err)
		}
	}

	created := res.CreatedAt.Format(time.RFC3339)

	err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Báo cáo tài chính - " + res.Account,
		Creator:     "finman",
		Identifier:  res.ID.String(),
		Created:     created,
		Modified:    created,
		Language:    "vi-VN",
		Description: fmt.Sprintf("%d giao dịch", len(rep.Transactions)),
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("setting document properties: %w", err)
	}

	return f, nil
}
