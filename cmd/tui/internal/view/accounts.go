package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/account"
)

type accountsState int

const (
	accountsStateBrowse accountsState = iota
	accountsStateForm
	accountsStateDelete
)

type AccountsModel struct {
	CommonModel
	svc *account.Service

	state    accountsState
	table    table.Model
	accounts []account.Account
	form     *huh.Form

	editID int
	in     *accountInput

	loading bool
	err     error
	status  string
}

func NewAccountsModel(svc *account.Service) AccountsModel {
	return AccountsModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "ID", Width: 4},
			{Title: "Tên tài khoản", Width: 28},
			{Title: "Loại", Width: 22},
			{Title: "Số dư", Width: 18},
		}),
		loading: true,
	}
}

func (m AccountsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.accounts = msg.accounts
		m.refreshTable()

		return m, nil

	case accountSavedMsg:
		m.state = accountsStateBrowse
		m.form = nil
		m.table.Focus()
		m.err = msg.err
		m.status = msg.status

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case accountsStateBrowse:
		return m.updateBrowse(msg)
	case accountsStateForm:
		return m.updateForm(msg)
	case accountsStateDelete:
		return m.updateDelete(msg)
	}

	return m, nil
}

func (m AccountsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if a, ok := m.selected(); ok {
				return m.openForm(&a)
			}
		case "d":
			if a, ok := m.selected(); ok {
				m.editID = a.ID
				m.in = &accountInput{}
				m.form = huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Xóa tài khoản %q?", a.Name)).
						Description("Các tài khoản phía sau sẽ được đánh số lại.").
						Affirmative("Xóa").
						Negative("Hủy").
						Value(&m.in.confirm),
				)).WithShowHelp(false)
				m.state = accountsStateDelete
				m.table.Blur()

				return m, m.form.Init()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AccountsModel) openForm(a *account.Account) (tea.Model, tea.Cmd) {
	m.editID = 0
	m.in = &accountInput{balance: "0", typ: account.TypeBank}

	if a != nil {
		m.editID = a.ID
		m.in = &accountInput{name: a.Name, balance: a.Balance.String(), typ: a.Type}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tên tài khoản").
				Value(&m.in.name).
				Validate(validateRequired),
			huh.NewSelect[account.Type]().
				Title("Loại tài khoản").
				Options(huh.NewOptions(account.Types()...)...).
				Value(&m.in.typ),
			huh.NewInput().
				Title("Số dư (VND)").
				Value(&m.in.balance).
				Validate(validateMoney),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = accountsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m AccountsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = accountsStateBrowse
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

	return m, m.saveCmd()
}

func (m AccountsModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = accountsStateBrowse
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

	if !m.in.confirm {
		return m, func() tea.Msg { return accountSavedMsg{} }
	}

	id := m.editID

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, id); err != nil {
			return accountSavedMsg{err: err}
		}

		return accountSavedMsg{status: "Đã xóa tài khoản."}
	}
}

func (m AccountsModel) selected() (account.Account, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return account.Account{}, false
	}

	return m.accounts[idx], true
}

func (m AccountsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Đang tải tài khoản...")
	}

	header := titleStyle.Render("Tài khoản") + "  " +
		faintStyle.Render("a: thêm | e: sửa | d: xóa | r: tải lại | Esc: quay lại")

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableBox(m.table),
	)

	if m.state != accountsStateBrowse && m.form != nil {
		title := "Thêm tài khoản"
		if m.editID > 0 {
			title = "Sửa tài khoản"
		}

		if m.state == accountsStateDelete {
			title = "Xóa tài khoản"
		}

		panel := panelStyle.Width(48).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + content)
}

func (m *AccountsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.accounts))
	for _, a := range m.accounts {
		rows = append(rows, table.Row{
			fmt.Sprint(a.ID),
			a.Name,
			string(a.Type),
			FormatMoney(a.Balance),
		})
	}

	m.table.SetRows(rows)
}

// accountInput holds the form bindings. It lives behind a pointer so the
// form keeps writing to it after the model is copied.
type accountInput struct {
	name    string
	balance string
	typ     account.Type
	confirm bool
}

type accountsLoadedMsg struct {
	accounts []account.Account
	err      error
}

func (m AccountsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.svc.List(ctx)

		return accountsLoadedMsg{accounts: accounts, err: err}
	}
}

type accountSavedMsg struct {
	status string
	err    error
}

func (m AccountsModel) saveCmd() tea.Cmd {
	id := m.editID
	in := *m.in

	return func() tea.Msg {
		amount, err := ParseMoney(in.balance)
		if err != nil {
			return accountSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		params := account.Params{Name: in.name, Balance: amount, Type: in.typ}

		if id > 0 {
			_, err = m.svc.Update(ctx, id, params)
			if err != nil {
				return accountSavedMsg{err: err}
			}

			return accountSavedMsg{status: "Đã cập nhật tài khoản."}
		}

		if _, err := m.svc.Create(ctx, params); err != nil {
			return accountSavedMsg{err: err}
		}

		return accountSavedMsg{status: "Đã thêm tài khoản."}
	}
}
