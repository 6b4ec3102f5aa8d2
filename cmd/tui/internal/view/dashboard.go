package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/report"
)

// DashboardModel shows balances, this month's totals, loans needing
// attention, saving goals and the latest transactions.
type DashboardModel struct {
	CommonModel
	reportService *report.Service

	dash    *report.Dashboard
	loading bool
	err     error
}

func NewDashboardModel(svc *report.Service) DashboardModel {
	return DashboardModel{reportService: svc, loading: true}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.dash = msg.dash
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Đang tải tổng quan...")
	}

	if m.err != nil || m.dash == nil {
		return lipgloss.NewStyle().Padding(2).Render(statusLine("", m.err) + "\n(Esc quay lại)")
	}

	d := m.dash

	overview := fmt.Sprintf(
		"%s\n\nTổng số dư:   %s\n\nTháng %s\nThu nhập:     %s\nChi tiêu:     %s\nTiết kiệm:    %s\nChênh lệch:   %s",
		titleStyle.Render("Tổng quan"),
		FormatMoney(d.TotalBalance),
		d.Month,
		okStyle.Render(FormatMoney(d.MonthTotals.Income)),
		errStyle.Render(FormatMoney(d.MonthTotals.Expense)),
		FormatMoney(d.MonthTotals.Savings),
		FormatMoney(d.MonthTotals.Difference),
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(42).Render(overview),
		panelStyle.Width(48).Render(m.loansView()),
	)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(42).Render(m.savingsView()),
		panelStyle.Width(48).Render(m.recentView()),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, bottom, faintStyle.Render("r: tải lại | Esc: quay lại")),
	)
}

func (m DashboardModel) loansView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Khoản vay cần chú ý"))
	sb.WriteString("\n\n")

	if len(m.dash.Overdue) == 0 && len(m.dash.DueSoon) == 0 {
		sb.WriteString(faintStyle.Render("Không có khoản vay nào sắp đến hạn."))
		return sb.String()
	}

	for _, l := range m.dash.Overdue {
		fmt.Fprintf(&sb, "%s %s → %s  %s (hạn %s)\n",
			errStyle.Render("●"), l.LenderName, l.BorrowerName,
			FormatMoney(l.RemainingPrincipal), FormatDate(l.DueDate))
	}

	for _, dl := range m.dash.DueSoon {
		fmt.Fprintf(&sb, "%s %s → %s  %s (còn %d ngày)\n",
			warnStyle.Render("●"), dl.Loan.LenderName, dl.Loan.BorrowerName,
			FormatMoney(dl.Loan.RemainingPrincipal), dl.Days)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) savingsView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Mục tiêu tiết kiệm"))
	sb.WriteString("\n\n")

	if len(m.dash.Savings) == 0 {
		sb.WriteString(faintStyle.Render("Chưa có mục tiêu nào."))
		return sb.String()
	}

	for _, g := range m.dash.Savings {
		pct := g.Progress.InexactFloat64()
		fmt.Fprintf(&sb, "%s\n%s %5.1f%%\n", g.Saving.Name, progressBar(pct, 24), pct)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) recentView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Giao dịch gần đây"))
	sb.WriteString("\n\n")

	if len(m.dash.Recent) == 0 {
		sb.WriteString(faintStyle.Render("Chưa có giao dịch."))
		return sb.String()
	}

	for _, t := range m.dash.Recent {
		fmt.Fprintf(&sb, "%s  %14s  %s\n", FormatDate(t.Date), FormatMoney(t.Signed()), m.dash.AccountNames[t.AccountID])
	}

	return strings.TrimRight(sb.String(), "\n")
}

type dashboardMsg struct {
	dash *report.Dashboard
	err  error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		dash, err := m.reportService.Dashboard(ctx, time.Now())

		return dashboardMsg{dash: dash, err: err}
	}
}
