package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/saving"
)

type savingsState int

const (
	savingsStateBrowse savingsState = iota
	savingsStateForm
	savingsStateDeposit
	savingsStateDelete
)

const barWidth = 30

// SavingsModel lists saving goals with a progress bar each.
type SavingsModel struct {
	CommonModel
	svc      *saving.Service
	accounts *account.Service

	state   savingsState
	savings []saving.Saving
	names   map[int]string
	opts    []huh.Option[int]
	cursor  int
	form    *huh.Form
	editID  int
	in      *savingInput
	loading bool
	err     error
	status  string
}

type savingInput struct {
	name     string
	target   string
	current  string
	deadline string
	account  int
	amount   string
	date     string
	confirm  bool
}

func NewSavingsModel(svc *saving.Service, accounts *account.Service) SavingsModel {
	return SavingsModel{svc: svc, accounts: accounts, loading: true}
}

func (m SavingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SavingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savingsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.savings = msg.savings
		m.names = msg.names
		m.opts = msg.opts
		m.cursor = max(0, min(m.cursor, len(m.savings)-1))

		return m, nil

	case savingSavedMsg:
		m.state = savingsStateBrowse
		m.form = nil
		m.err = msg.err
		m.status = msg.status

		return m, m.loadCmd()
	}

	if m.state == savingsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m SavingsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.savings)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "a":
		return m.openForm(nil)
	case "e":
		if s, ok := m.selected(); ok {
			return m.openForm(&s)
		}
	case "n":
		if s, ok := m.selected(); ok {
			return m.openDeposit(s)
		}
	case "d":
		if s, ok := m.selected(); ok {
			return m.openDelete(s)
		}
	}

	return m, nil
}

func (m SavingsModel) openForm(s *saving.Saving) (tea.Model, tea.Cmd) {
	m.editID = 0
	m.in = &savingInput{current: "0"}

	if s != nil {
		m.editID = s.ID
		m.in = &savingInput{
			name:     s.Name,
			target:   s.TargetAmount.String(),
			current:  s.CurrentAmount.String(),
			deadline: FormatDate(s.Deadline),
			account:  s.AccountID,
		}
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Tên mục tiêu").
			Value(&m.in.name).
			Validate(validateRequired),
		huh.NewInput().
			Title("Số tiền mục tiêu (VND)").
			Value(&m.in.target).
			Validate(validateMoney),
		huh.NewInput().
			Title("Đã tiết kiệm (VND)").
			Value(&m.in.current).
			Validate(validateMoney),
		huh.NewInput().
			Title("Hạn hoàn thành").
			Placeholder("YYYY-MM-DD").
			Value(&m.in.deadline).
			Validate(validateOptionalDate),
		huh.NewSelect[int]().
			Title("Tài khoản").
			Options(m.opts...).
			Value(&m.in.account),
	)).WithWidth(48).WithShowHelp(false)

	m.state = savingsStateForm

	return m, m.form.Init()
}

func (m SavingsModel) openDeposit(s saving.Saving) (tea.Model, tea.Cmd) {
	m.editID = s.ID
	m.in = &savingInput{date: FormatDate(today())}

	desc := "Mục tiêu không gắn với tài khoản nào."
	if s.AccountID > 0 {
		desc = fmt.Sprintf("Sẽ ghi giao dịch gửi tiết kiệm trên %s.", m.names[s.AccountID])
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Gửi thêm vào %q (VND)", s.Name)).
			Description(desc).
			Value(&m.in.amount).
			Validate(validateMoney),
		huh.NewInput().
			Title("Ngày").
			Value(&m.in.date).
			Validate(validateDate),
	)).WithWidth(48).WithShowHelp(false)

	m.state = savingsStateDeposit

	return m, m.form.Init()
}

func (m SavingsModel) openDelete(s saving.Saving) (tea.Model, tea.Cmd) {
	m.editID = s.ID
	m.in = &savingInput{}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Xóa mục tiêu %q?", s.Name)).
			Affirmative("Xóa").
			Negative("Hủy").
			Value(&m.in.confirm),
	)).WithShowHelp(false)

	m.state = savingsStateDelete

	return m, m.form.Init()
}

func (m SavingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = savingsStateBrowse
		m.form = nil

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
	case savingsStateDeposit:
		return m, m.depositCmd()
	case savingsStateDelete:
		return m, m.deleteCmd()
	}

	return m, m.saveCmd()
}

func (m SavingsModel) selected() (saving.Saving, bool) {
	if m.cursor < 0 || m.cursor >= len(m.savings) {
		return saving.Saving{}, false
	}

	return m.savings[m.cursor], true
}

func (m SavingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Đang tải mục tiêu tiết kiệm...")
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Tiết kiệm"))
	sb.WriteString("  ")
	sb.WriteString(faintStyle.Render("a: thêm | e: sửa | n: gửi thêm | d: xóa | Esc: quay lại"))
	sb.WriteString("\n\n")

	if len(m.savings) == 0 {
		sb.WriteString(faintStyle.Render("Chưa có mục tiêu tiết kiệm nào."))
	}

	for i, s := range m.savings {
		cursor := "  "
		name := s.Name

		if i == m.cursor {
			cursor = "> "
			name = activeStyle(name)
		}

		pct := s.Progress().InexactFloat64()

		fmt.Fprintf(&sb, "%s%s", cursor, name)

		if s.AccountID > 0 {
			sb.WriteString(faintStyle.Render(" (" + m.names[s.AccountID] + ")"))
		}

		fmt.Fprintf(&sb, "\n  %s %5.1f%%\n", progressBar(pct, barWidth), pct)
		fmt.Fprintf(&sb, "  %s / %s", FormatMoney(s.CurrentAmount), FormatMoney(s.TargetAmount))

		switch {
		case s.Reached():
			sb.WriteString("  " + okStyle.Render("Đã đạt"))
		default:
			sb.WriteString(faintStyle.Render("  còn " + FormatMoney(s.Remaining())))
		}

		if !s.Deadline.IsZero() {
			sb.WriteString(faintStyle.Render("  hạn " + FormatDate(s.Deadline)))
		}

		sb.WriteString("\n\n")
	}

	content := sb.String()

	if m.state != savingsStateBrowse && m.form != nil {
		panel := panelStyle.Width(52).Render(m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + content)
}

type savingsLoadedMsg struct {
	savings []saving.Saving
	names   map[int]string
	opts    []huh.Option[int]
	err     error
}

func (m SavingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		savings, err := m.svc.List(ctx)
		if err != nil {
			return savingsLoadedMsg{err: err}
		}

		accounts, err := m.accounts.List(ctx)
		if err != nil {
			return savingsLoadedMsg{err: err}
		}

		names := make(map[int]string, len(accounts))
		opts := []huh.Option[int]{huh.NewOption("(không)", 0)}

		for _, a := range accounts {
			names[a.ID] = a.Name
			opts = append(opts, huh.NewOption(a.Name, a.ID))
		}

		return savingsLoadedMsg{savings: savings, names: names, opts: opts}
	}
}

type savingSavedMsg struct {
	status string
	err    error
}

func (m SavingsModel) saveCmd() tea.Cmd {
	id := m.editID
	in := *m.in

	return func() tea.Msg {
		target, err := ParseMoney(in.target)
		if err != nil {
			return savingSavedMsg{err: err}
		}

		current, err := ParseMoney(in.current)
		if err != nil {
			return savingSavedMsg{err: err}
		}

		deadline, err := ParseDate(in.deadline)
		if err != nil {
			return savingSavedMsg{err: err}
		}

		params := saving.Params{
			Name:          in.name,
			TargetAmount:  target,
			CurrentAmount: current,
			Deadline:      deadline,
			AccountID:     in.account,
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if id > 0 {
			if _, err := m.svc.Update(ctx, id, params); err != nil {
				return savingSavedMsg{err: err}
			}

			return savingSavedMsg{status: "Đã cập nhật mục tiêu."}
		}

		if _, err := m.svc.Create(ctx, params); err != nil {
			return savingSavedMsg{err: err}
		}

		return savingSavedMsg{status: "Đã thêm mục tiêu."}
	}
}

func (m SavingsModel) depositCmd() tea.Cmd {
	id := m.editID
	in := *m.in

	return func() tea.Msg {
		amount, err := ParseMoney(in.amount)
		if err != nil {
			return savingSavedMsg{err: err}
		}

		date, err := ParseDate(in.date)
		if err != nil {
			return savingSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.svc.Deposit(ctx, id, amount, date)
		if err != nil {
			return savingSavedMsg{err: err}
		}

		return savingSavedMsg{status: fmt.Sprintf("Đã gửi %s vào %s (%s%%).", FormatMoney(amount), s.Name, s.Progress().StringFixed(1))}
	}
}

func (m SavingsModel) deleteCmd() tea.Cmd {
	id := m.editID
	confirmed := m.in.confirm

	return func() tea.Msg {
		if !confirmed {
			return savingSavedMsg{}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, id); err != nil {
			return savingSavedMsg{err: err}
		}

		return savingSavedMsg{status: "Đã xóa mục tiêu."}
	}
}
