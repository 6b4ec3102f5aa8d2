package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/report"
)

type reportTab int

const (
	tabMonthly reportTab = iota
	tabCategories
	tabCashFlow
	tabAssets
)

var tabTitles = []string{"Theo tháng", "Danh mục", "Dòng tiền", "Tài sản"}

type reportsState int

const (
	reportsStateLoading reportsState = iota
	reportsStateAccount
	reportsStateView
)

// ReportsModel shows the aggregated report for one account or all of them.
type ReportsModel struct {
	CommonModel
	svc *report.Service

	state   reportsState
	form    *huh.Form
	account *string
	rep     *report.Report
	tab     reportTab
	vp      viewport.Model
	err     error
}

func NewReportsModel(svc *report.Service) ReportsModel {
	account := report.AllAccountsLabel

	return ReportsModel{
		svc:     svc,
		account: &account,
		vp:      viewport.New(90, 20),
	}
}

func (m ReportsModel) Init() tea.Cmd {
	return m.loadChoicesCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportChoicesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.form = huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Báo cáo cho").
				Options(huh.NewOptions(msg.names...)...).
				Value(m.account),
		)).WithShowHelp(false)
		m.state = reportsStateAccount

		return m, m.form.Init()

	case reportBuiltMsg:
		m.err = msg.err
		m.rep = msg.rep
		m.state = reportsStateView
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width - 4
		m.vp.Height = msg.Height - 8
		m.refresh()

		return m, nil
	}

	switch m.state {
	case reportsStateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	case reportsStateAccount:
		return m.updateAccount(msg)
	case reportsStateView:
		return m.updateView(msg)
	}

	return m, nil
}

func (m ReportsModel) updateAccount(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.form, cmd, done = updateForm(m.form, msg)
	if !done {
		return m, cmd
	}

	m.state = reportsStateLoading

	return m, m.buildCmd(*m.account)
}

func (m ReportsModel) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "s":
			m.state = reportsStateLoading
			return m, m.loadChoicesCmd()
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % reportTab(len(tabTitles))
			m.refresh()

			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + reportTab(len(tabTitles)) - 1) % reportTab(len(tabTitles))
			m.refresh()

			return m, nil
		case "1", "2", "3", "4":
			m.tab = reportTab(keyMsg.String()[0] - '1')
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)

	return m, cmd
}

func (m *ReportsModel) refresh() {
	if m.rep == nil {
		m.vp.SetContent("")
		return
	}

	var body string

	switch m.tab {
	case tabMonthly:
		body = monthlyView(m.rep)
	case tabCategories:
		body = categoriesView(m.rep)
	case tabCashFlow:
		body = cashFlowView(m.rep)
	case tabAssets:
		body = assetsView(m.rep)
	}

	m.vp.SetContent(body)
	m.vp.GotoTop()
}

func (m ReportsModel) View() string {
	switch m.state {
	case reportsStateLoading:
		return lipgloss.NewStyle().Padding(2).Render(statusLine("Đang tải báo cáo...", m.err))
	case reportsStateAccount:
		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render("Báo cáo") + "\n\n" + m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(statusLine("", m.err) + "\n(Esc quay lại)")
	}

	if !m.rep.Found {
		return lipgloss.NewStyle().Padding(2).Render(
			warnStyle.Render(fmt.Sprintf("Không tìm thấy tài khoản %q.", m.rep.Account)) + "\n\n(s: chọn lại, Esc: quay lại)",
		)
	}

	tabs := make([]string, len(tabTitles))
	for i, t := range tabTitles {
		label := fmt.Sprintf(" %d %s ", i+1, t)
		if reportTab(i) == m.tab {
			tabs[i] = activeStyle("[" + label + "]")
		} else {
			tabs[i] = faintStyle.Render(" " + label + " ")
		}
	}

	header := titleStyle.Render("Báo cáo: "+m.rep.Account) + "\n" + strings.Join(tabs, "")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.vp.View(),
			faintStyle.Render("Tab/←→: đổi bảng | ↑↓: cuộn | s: đổi tài khoản | Esc: quay lại"),
		),
	)
}

func monthlyView(rep *report.Report) string {
	if len(rep.Monthly) == 0 {
		return faintStyle.Render("Không có giao dịch.")
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%-8s %15s %15s %15s %15s %15s\n", "Tháng", "Thu nhập", "Chi tiêu", "Tiết kiệm", "Chuyển đến", "Chuyển đi")

	for _, r := range rep.Monthly {
		out := r.TransferOut.Add(r.Transfer)
		fmt.Fprintf(&sb, "%-8s %15s %15s %15s %15s %15s\n",
			r.Month, FormatMoney(r.Income), FormatMoney(r.Expense), FormatMoney(r.Savings),
			FormatMoney(r.TransferIn), FormatMoney(out))
	}

	t := rep.Totals
	fmt.Fprintf(&sb, "\n%s\nThu nhập:   %s\nChi tiêu:   %s\nTiết kiệm:  %s\nChênh lệch: %s\n",
		titleStyle.Render("Tổng cộng"),
		FormatMoney(t.Income), FormatMoney(t.Expense), FormatMoney(t.Savings), FormatMoney(t.Difference))

	return sb.String()
}

func categoriesView(rep *report.Report) string {
	if len(rep.Categories) == 0 {
		return faintStyle.Render("Không có dữ liệu danh mục.")
	}

	var (
		sb   strings.Builder
		last string
	)

	for _, c := range rep.Categories {
		if string(c.Type) != last {
			if last != "" {
				sb.WriteString("\n")
			}

			sb.WriteString(titleStyle.Render(string(c.Type)) + "\n")
			last = string(c.Type)
		}

		name := c.Category
		if name == "" {
			name = "(chưa phân loại)"
		}

		share := c.Share.InexactFloat64()
		fmt.Fprintf(&sb, "  %-22s %s %6.2f%%  %s\n", truncate(name, 22), progressBar(share, 20), share, FormatMoney(c.Amount))
	}

	return sb.String()
}

func cashFlowView(rep *report.Report) string {
	cf := rep.CashFlow
	if len(cf.Points) == 0 {
		return faintStyle.Render("Không có giao dịch.")
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Số dư đầu: %s   Số dư cuối: %s   Thay đổi: %s\n\n",
		FormatMoney(cf.Opening), FormatMoney(cf.Closing), signed(cf.NetChange, 0))
	fmt.Fprintf(&sb, "%-10s %16s %16s\n", "Ngày", "Số tiền", "Số dư")

	for _, p := range cf.Points {
		fmt.Fprintf(&sb, "%-10s %s %16s\n", FormatDate(p.Date), signed(p.Amount, 16), FormatMoney(p.Balance))
	}

	return sb.String()
}

func assetsView(rep *report.Report) string {
	a := rep.Assets
	if a.Empty() {
		return faintStyle.Render("Không có tài sản nào.")
	}

	var sb strings.Builder

	for _, item := range a.Items {
		fmt.Fprintf(&sb, "%-14s %-32s %16s\n", item.Kind, truncate(item.Name, 32), FormatMoney(item.Amount))
	}

	fmt.Fprintf(&sb, "\nSố dư tài khoản: %s\nCho vay:         %s\nĐi vay:          %s\nTiết kiệm:       %s\n%s %s\n",
		FormatMoney(a.Balances), FormatMoney(a.Receivable), FormatMoney(a.Payable), FormatMoney(a.Savings),
		titleStyle.Render("Tài sản ròng:   "), FormatMoney(a.NetWorth))

	return sb.String()
}

// signed colours an amount by sign after padding it to width.
func signed(d decimal.Decimal, width int) string {
	s := FormatMoney(d)
	if d.IsPositive() {
		s = "+" + s
	}

	s = fmt.Sprintf("%*s", width, s)

	switch {
	case d.IsPositive():
		return okStyle.Render(s)
	case d.IsNegative():
		return errStyle.Render(s)
	}

	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

type reportChoicesMsg struct {
	names []string
	err   error
}

func (m ReportsModel) loadChoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		names, err := m.svc.AccountChoices(ctx)

		return reportChoicesMsg{names: names, err: err}
	}
}

type reportBuiltMsg struct {
	rep *report.Report
	err error
}

func (m ReportsModel) buildCmd(account string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.svc.Build(ctx, account)

		return reportBuiltMsg{rep: rep, err: err}
	}
}
