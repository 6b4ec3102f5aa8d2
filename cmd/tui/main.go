package main

import (
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finman/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finman/internal/app"
	"github.com/MrJamesThe3rd/finman/internal/config"
)

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewAccounts
	ViewTransactions
	ViewLoans
	ViewSavings
	ViewReports
	ViewExport
	ViewImport
	ViewReview
)

var menu = []struct {
	key   string
	label string
	view  View
}{
	{"1", "Tổng quan", ViewDashboard},
	{"2", "Tài khoản", ViewAccounts},
	{"3", "Giao dịch", ViewTransactions},
	{"4", "Khoản vay", ViewLoans},
	{"5", "Tiết kiệm", ViewSavings},
	{"6", "Báo cáo", ViewReports},
	{"7", "Xuất Excel", ViewExport},
	{"8", "Nhập giao dịch từ CSV", ViewImport},
	{"9", "Phân loại giao dịch", ViewReview},
}

type model struct {
	app *app.App
	cfg *config.Config

	currentView View
	size        tea.WindowSizeMsg

	dashboardView    view.DashboardModel
	accountsView     view.AccountsModel
	transactionsView view.TransactionsModel
	loansView        view.LoansModel
	savingsView      view.SavingsModel
	reportsView      view.ReportsModel
	exportView       view.ExportModel
	importView       view.ImportModel
	reviewView       view.ReviewModel
}

func initialModel(cfg *config.Config, a *app.App) model {
	return model{
		app:         a,
		cfg:         cfg,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// open builds a fresh model for v so every visit starts from current data.
func (m model) open(v View) (model, tea.Cmd) {
	var cmd tea.Cmd

	switch v {
	case ViewDashboard:
		m.dashboardView = view.NewDashboardModel(m.app.Reports)
		cmd = m.dashboardView.Init()
	case ViewAccounts:
		m.accountsView = view.NewAccountsModel(m.app.Accounts)
		cmd = m.accountsView.Init()
	case ViewTransactions:
		m.transactionsView = view.NewTransactionsModel(m.app.Transactions, m.app.Accounts, m.app.Reports, m.app.Matching)
		cmd = m.transactionsView.Init()
	case ViewLoans:
		m.loansView = view.NewLoansModel(m.app.Loans, m.app.Accounts)
		cmd = m.loansView.Init()
	case ViewSavings:
		m.savingsView = view.NewSavingsModel(m.app.Savings, m.app.Accounts)
		cmd = m.savingsView.Init()
	case ViewReports:
		m.reportsView = view.NewReportsModel(m.app.Reports)
		cmd = m.reportsView.Init()
	case ViewExport:
		m.exportView = view.NewExportModel(m.app.Export, m.app.Reports, m.cfg.Export.Dir)
		cmd = m.exportView.Init()
	case ViewImport:
		m.importView = view.NewImportModel(m.app.Transactions, m.app.Accounts, m.app.Importer)
		cmd = m.importView.Init()
	case ViewReview:
		m.reviewView = view.NewReviewModel(m.app.Transactions, m.app.Matching)
		cmd = m.reviewView.Init()
	}

	m.currentView = v

	if m.size.Width > 0 {
		size := m.size
		cmd = tea.Batch(cmd, func() tea.Msg { return size })
	}

	return m, cmd
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					return m.open(item.view)
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	var (
		newModel tea.Model
		cmd      tea.Cmd
	)

	switch m.currentView {
	case ViewDashboard:
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewAccounts:
		newModel, cmd = m.accountsView.Update(msg)
		m.accountsView = newModel.(view.AccountsModel)
	case ViewTransactions:
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewLoans:
		newModel, cmd = m.loansView.Update(msg)
		m.loansView = newModel.(view.LoansModel)
	case ViewSavings:
		newModel, cmd = m.savingsView.Update(msg)
		m.savingsView = newModel.(view.SavingsModel)
	case ViewReports:
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewExport:
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewImport:
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReview:
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return m.menuView()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewAccounts:
		return m.accountsView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewLoans:
		return m.loansView.View()
	case ViewSavings:
		return m.savingsView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewImport:
		return m.importView.View()
	case ViewReview:
		return m.reviewView.View()
	}

	return "Không rõ màn hình"
}

func (m model) menuView() string {
	s := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render(m.cfg.App.Name) +
		" - Quản lý tài chính cá nhân\n\n"

	for _, item := range menu {
		s += item.key + ". " + item.label + "\n"
	}

	s += "\nq. Thoát"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := tea.LogToFile(cfg.Log.File, cfg.App.Name)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Log.Level})))
	slog.Info("starting TUI", "data_dir", cfg.Data.Dir)

	p := tea.NewProgram(initialModel(cfg, app.New(cfg)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
