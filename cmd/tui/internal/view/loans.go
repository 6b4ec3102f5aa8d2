package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/loan"
)

type loansState int

const (
	loansStateBrowse loansState = iota
	loansStateForm
	loansStateRepay
	loansStateConfirm
)

// confirmAction is what a yes/no prompt on the loans screen applies to.
type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmPaid
)

type LoansModel struct {
	CommonModel
	svc      *loan.Service
	accounts *account.Service

	state  loansState
	table  table.Model
	loans  []loan.Loan
	opts   []huh.Option[int]
	form   *huh.Form
	editID int
	action confirmAction
	in     *loanInput

	loading bool
	err     error
	status  string
}

type loanInput struct {
	typ       loan.Type
	lender    string
	borrower  string
	principal string
	remaining string
	rate      string
	start     string
	due       string
	from      int
	to        int
	amount    string
	confirm   bool
}

func NewLoansModel(svc *loan.Service, accounts *account.Service) LoansModel {
	return LoansModel{
		svc:      svc,
		accounts: accounts,
		table: newTable([]table.Column{
			{Title: "ID", Width: 4},
			{Title: "Loại", Width: 9},
			{Title: "Bên cho vay", Width: 16},
			{Title: "Bên vay", Width: 16},
			{Title: "Còn lại", Width: 16},
			{Title: "Hạn trả", Width: 11},
			{Title: "Trạng thái", Width: 10},
		}),
		loading: true,
	}
}

func (m LoansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LoansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loansLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.loans = msg.loans
		m.opts = msg.opts
		m.refreshTable()

		return m, nil

	case loanSavedMsg:
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()
		m.err = msg.err
		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == loansStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m LoansModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.openForm(nil)
		case "e":
			if l, ok := m.selected(); ok {
				return m.openForm(&l)
			}
		case "p":
			if l, ok := m.selected(); ok {
				return m.openRepay(l)
			}
		case "x":
			if l, ok := m.selected(); ok {
				return m.openConfirm(l, confirmPaid)
			}
		case "d":
			if l, ok := m.selected(); ok {
				return m.openConfirm(l, confirmDelete)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LoansModel) openForm(l *loan.Loan) (tea.Model, tea.Cmd) {
	m.editID = 0
	m.in = &loanInput{typ: loan.TypeBorrow, start: FormatDate(today()), rate: "0"}

	if l != nil {
		m.editID = l.ID
		m.in = &loanInput{
			typ:       l.Type,
			lender:    l.LenderName,
			borrower:  l.BorrowerName,
			principal: l.Principal.String(),
			remaining: l.RemainingPrincipal.String(),
			rate:      l.InterestRate.String(),
			start:     FormatDate(l.StartDate),
			due:       FormatDate(l.DueDate),
			from:      l.FromAccountID,
			to:        l.ToAccountID,
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[loan.Type]().
				Title("Loại").
				Options(huh.NewOptions(loan.Types()...)...).
				Value(&m.in.typ),
			huh.NewInput().
				Title("Bên cho vay").
				Value(&m.in.lender).
				Validate(validateRequired),
			huh.NewInput().
				Title("Bên vay").
				Value(&m.in.borrower).
				Validate(validateRequired),
			huh.NewInput().
				Title("Số tiền gốc (VND)").
				Value(&m.in.principal).
				Validate(validateMoney),
			huh.NewInput().
				Title("Còn lại (VND)").
				Description("Để trống để bằng số tiền gốc.").
				Value(&m.in.remaining),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Lãi suất (%/năm)").
				Value(&m.in.rate).
				Validate(validateRate),
			huh.NewInput().
				Title("Ngày bắt đầu").
				Placeholder("YYYY-MM-DD").
				Value(&m.in.start).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Hạn trả").
				Placeholder("YYYY-MM-DD").
				Value(&m.in.due).
				Validate(validateDate),
			huh.NewSelect[int]().
				Title("Tài khoản chuyển đi").
				Options(m.opts...).
				Value(&m.in.from),
			huh.NewSelect[int]().
				Title("Tài khoản nhận").
				Options(m.opts...).
				Value(&m.in.to),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = loansStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) openRepay(l loan.Loan) (tea.Model, tea.Cmd) {
	if l.Status == loan.StatusPaid {
		m.status = "Khoản vay đã được trả."
		return m, nil
	}

	m.editID = l.ID
	m.in = &loanInput{}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Số tiền trả (VND)").
			Description(fmt.Sprintf("Còn lại: %s", FormatMoney(l.RemainingPrincipal))).
			Value(&m.in.amount).
			Validate(validateMoney),
	)).WithWidth(48).WithShowHelp(false)

	m.state = loansStateRepay
	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) openConfirm(l loan.Loan, action confirmAction) (tea.Model, tea.Cmd) {
	m.editID = l.ID
	m.action = action
	m.in = &loanInput{}

	title := fmt.Sprintf("Xóa khoản vay #%d?", l.ID)
	if action == confirmPaid {
		title = fmt.Sprintf("Đánh dấu khoản vay #%d đã trả?", l.ID)
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(fmt.Sprintf("%s → %s, còn %s", l.LenderName, l.BorrowerName, FormatMoney(l.RemainingPrincipal))).
			Affirmative("Đồng ý").
			Negative("Hủy").
			Value(&m.in.confirm),
	)).WithShowHelp(false)

	m.state = loansStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.form, cmd, done = updateForm(m.form, msg)
	if !done {
		return m, cmd
	}

	switch m.state {
	case loansStateRepay:
		return m, m.repayCmd()
	case loansStateConfirm:
		return m, m.confirmCmd()
	}

	return m, m.saveCmd()
}

func (m LoansModel) selected() (loan.Loan, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.loans) {
		return loan.Loan{}, false
	}

	return m.loans[idx], true
}

func (m LoansModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Đang tải khoản vay...")
	}

	header := titleStyle.Render("Khoản vay") + "  " +
		faintStyle.Render("a: thêm | e: sửa | p: trả bớt | x: đã trả | d: xóa | Esc: quay lại")

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBox(m.table),
	)

	if m.state != loansStateBrowse && m.form != nil {
		title := "Thêm khoản vay"

		switch {
		case m.state == loansStateRepay:
			title = "Trả nợ"
		case m.state == loansStateConfirm:
			title = "Xác nhận"
		case m.editID > 0:
			title = "Sửa khoản vay"
		}

		panel := panelStyle.Width(52).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + content)
}

func (m *LoansModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.loans))
	for _, l := range m.loans {
		status := string(l.Status)

		switch l.Status {
		case loan.StatusOverdue:
			status = errStyle.Render(status)
		case loan.StatusPaid:
			status = okStyle.Render(status)
		}

		rows = append(rows, table.Row{
			fmt.Sprint(l.ID),
			string(l.Type),
			l.LenderName,
			l.BorrowerName,
			FormatMoney(l.RemainingPrincipal),
			FormatDate(l.DueDate),
			status,
		})
	}

	m.table.SetRows(rows)
}

type loansLoadedMsg struct {
	loans []loan.Loan
	opts  []huh.Option[int]
	err   error
}

func (m LoansModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		loans, err := m.svc.List(ctx)
		if err != nil {
			return loansLoadedMsg{err: err}
		}

		accounts, err := m.accounts.List(ctx)
		if err != nil {
			return loansLoadedMsg{err: err}
		}

		opts := []huh.Option[int]{huh.NewOption("(không)", 0)}
		for _, a := range accounts {
			opts = append(opts, huh.NewOption(a.Name, a.ID))
		}

		return loansLoadedMsg{loans: loans, opts: opts}
	}
}

type loanSavedMsg struct {
	status string
	err    error
}

func (m LoansModel) saveCmd() tea.Cmd {
	id := m.editID
	in := *m.in

	return func() tea.Msg {
		params, err := in.params()
		if err != nil {
			return loanSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if id > 0 {
			if _, err := m.svc.Update(ctx, id, params); err != nil {
				return loanSavedMsg{err: err}
			}

			return loanSavedMsg{status: "Đã cập nhật khoản vay."}
		}

		if _, err := m.svc.Create(ctx, params); err != nil {
			return loanSavedMsg{err: err}
		}

		return loanSavedMsg{status: "Đã thêm khoản vay."}
	}
}

func (in loanInput) params() (loan.Params, error) {
	principal, err := ParseMoney(in.principal)
	if err != nil {
		return loan.Params{}, err
	}

	remaining := principal
	if in.remaining != "" {
		remaining, err = ParseMoney(in.remaining)
		if err != nil {
			return loan.Params{}, err
		}
	}

	rate, err := ParseRate(in.rate)
	if err != nil {
		return loan.Params{}, err
	}

	start, err := ParseDate(in.start)
	if err != nil {
		return loan.Params{}, err
	}

	due, err := ParseDate(in.due)
	if err != nil {
		return loan.Params{}, err
	}

	return loan.Params{
		Type:               in.typ,
		LenderName:         in.lender,
		BorrowerName:       in.borrower,
		DueDate:            due,
		RemainingPrincipal: remaining,
		Principal:          principal,
		InterestRate:       rate,
		StartDate:          start,
		FromAccountID:      in.from,
		ToAccountID:        in.to,
	}, nil
}

func (m LoansModel) repayCmd() tea.Cmd {
	id := m.editID
	raw := m.in.amount

	return func() tea.Msg {
		amount, err := ParseMoney(raw)
		if err != nil {
			return loanSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		l, err := m.svc.Repay(ctx, id, amount)
		if err != nil {
			return loanSavedMsg{err: err}
		}

		if l.Status == loan.StatusPaid {
			return loanSavedMsg{status: "Đã trả hết khoản vay."}
		}

		return loanSavedMsg{status: fmt.Sprintf("Đã trả %s, còn lại %s.", FormatMoney(amount), FormatMoney(l.RemainingPrincipal))}
	}
}

func (m LoansModel) confirmCmd() tea.Cmd {
	id := m.editID
	action := m.action
	confirmed := m.in.confirm

	return func() tea.Msg {
		if !confirmed {
			return loanSavedMsg{}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if action == confirmPaid {
			if _, err := m.svc.MarkPaid(ctx, id); err != nil {
				return loanSavedMsg{err: err}
			}

			return loanSavedMsg{status: "Đã đánh dấu đã trả."}
		}

		if err := m.svc.Delete(ctx, id); err != nil {
			return loanSavedMsg{err: err}
		}

		return loanSavedMsg{status: "Đã xóa khoản vay."}
	}
}
