package view

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/matching"
	"github.com/MrJamesThe3rd/finman/internal/report"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type txState int

const (
	txStateScope txState = iota
	txStatePeriod
	txStateList
	txStateEditing
	txStateTransfer
	txStateDelete
)

var errSameAccount = errors.New("tài khoản nguồn và đích phải khác nhau")

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx      transaction.Transaction
	account string
}

func (i txItem) Title() string {
	typ := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Type))

	return fmt.Sprintf("%s  %14s  %s  %s", FormatDate(i.tx.Date), FormatMoney(i.tx.Signed()), typ, i.tx.Category)
}

func (i txItem) Description() string {
	if i.tx.Note == "" {
		return i.account
	}

	return fmt.Sprintf("%s | %s", i.account, i.tx.Note)
}

func (i txItem) FilterValue() string {
	return i.tx.Category + " " + i.tx.Note
}

type TransactionsModel struct {
	CommonModel
	txService       *transaction.Service
	accountService  *account.Service
	reportService   *report.Service
	matchingService *matching.Service

	state        txState
	scopeForm    *huh.Form
	periodPicker PeriodPicker
	list         list.Model
	form         *huh.Form

	scope    *string
	accounts []account.Account
	names    map[int]string
	period   PeriodSelectedMsg
	editID   int
	in       *txInput

	loading bool
	err     error
	status  string
}

// txInput holds the add, edit and transfer form bindings.
type txInput struct {
	date     string
	typ      transaction.Type
	amount   string
	account  int
	to       int
	category string
	note     string
	confirm  bool
}

func NewTransactionsModel(
	txSvc *transaction.Service,
	accountSvc *account.Service,
	reportSvc *report.Service,
	matchSvc *matching.Service,
) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Giao dịch"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	scope := report.AllAccountsLabel

	return TransactionsModel{
		txService:       txSvc,
		accountService:  accountSvc,
		reportService:   reportSvc,
		matchingService: matchSvc,
		periodPicker:    NewPeriodPicker("Khoảng thời gian", PeriodThisMonth),
		list:            l,
		scope:           &scope,
		loading:         true,
	}
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadScopesCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txScopesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.accounts = msg.accounts
		m.names = make(map[int]string, len(msg.accounts))

		for _, a := range msg.accounts {
			m.names[a.ID] = a.Name
		}

		m.scopeForm = huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Xem giao dịch của").
				Options(huh.NewOptions(msg.choices...)...).
				Value(m.scope),
		)).WithShowHelp(false)
		m.state = txStateScope

		return m, m.scopeForm.Init()

	case PeriodSelectedMsg:
		m.period = msg
		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.refreshListItems(msg.txs)

		if len(msg.txs) == 0 {
			m.status = "Không có giao dịch nào."
		}

		return m, nil

	case txEditMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		return m.openForm(msg.tx)

	case saveTxResultMsg:
		m.state = txStateList
		m.form = nil
		m.err = msg.err
		m.status = msg.status

		if msg.err != nil {
			return m, nil
		}

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateScope:
		return m.updateScope(msg)
	case txStatePeriod:
		return m.updatePeriod(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing, txStateTransfer, txStateDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateScope(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if m.scopeForm == nil {
		return m, nil
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.scopeForm, cmd, done = updateForm(m.scopeForm, msg)
	if !done {
		return m, cmd
	}

	return m.openPeriod()
}

func (m TransactionsModel) openPeriod() (tea.Model, tea.Cmd) {
	m.state = txStatePeriod
	m.periodPicker = NewPeriodPicker("Khoảng thời gian", m.period.Period)

	return m, m.periodPicker.Init()
}

func (m TransactionsModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "s":
			m.loading = true
			return m, m.loadScopesCmd()
		case "f":
			return m.openPeriod()
		case "a":
			return m.openForm(nil)
		case "t":
			return m.openTransfer()
		case "enter", "e":
			if item, ok := m.list.SelectedItem().(txItem); ok {
				return m, m.loadForEditCmd(item.tx.ID)
			}
		case "d":
			if item, ok := m.list.SelectedItem().(txItem); ok {
				return m.openDelete(item)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) accountOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(m.accounts))
	for _, a := range m.accounts {
		opts = append(opts, huh.NewOption(a.Name, a.ID))
	}

	return opts
}

func (m TransactionsModel) defaultAccount() int {
	for _, a := range m.accounts {
		if a.Name == *m.scope {
			return a.ID
		}
	}

	if len(m.accounts) > 0 {
		return m.accounts[0].ID
	}

	return 0
}

func (m TransactionsModel) openForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	if len(m.accounts) == 0 {
		m.status = "Hãy tạo tài khoản trước."
		return m, nil
	}

	m.editID = 0
	m.in = &txInput{
		date:    FormatDate(today()),
		typ:     transaction.TypeExpense,
		account: m.defaultAccount(),
	}

	if tx != nil {
		m.editID = tx.ID
		m.in = &txInput{
			date:     FormatDate(tx.Date),
			typ:      tx.Type,
			amount:   tx.Amount.Abs().String(),
			account:  tx.AccountID,
			category: tx.Category,
			note:     tx.Note,
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ngày").
				Placeholder("YYYY-MM-DD").
				Value(&m.in.date).
				Validate(validateDate),
			huh.NewSelect[transaction.Type]().
				Title("Loại giao dịch").
				Options(huh.NewOptions(transaction.Types()...)...).
				Value(&m.in.typ),
			huh.NewInput().
				Title("Số tiền (VND)").
				Value(&m.in.amount).
				Validate(validateMoney),
			huh.NewSelect[int]().
				Title("Tài khoản").
				Options(m.accountOptions()...).
				Value(&m.in.account),
			huh.NewInput().
				Title("Danh mục").
				Description("Để trống để tự gợi ý theo ghi chú.").
				Value(&m.in.category),
			huh.NewInput().
				Title("Ghi chú").
				Value(&m.in.note),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) openTransfer() (tea.Model, tea.Cmd) {
	if len(m.accounts) < 2 {
		m.status = "Cần ít nhất hai tài khoản để chuyển tiền."
		return m, nil
	}

	from := m.defaultAccount()

	to := m.accounts[0].ID
	if to == from {
		to = m.accounts[1].ID
	}

	m.in = &txInput{date: FormatDate(today()), account: from, to: to}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Từ tài khoản").
				Options(m.accountOptions()...).
				Value(&m.in.account),
			huh.NewSelect[int]().
				Title("Đến tài khoản").
				Options(m.accountOptions()...).
				Value(&m.in.to),
			huh.NewInput().
				Title("Số tiền (VND)").
				Value(&m.in.amount).
				Validate(validateMoney),
			huh.NewInput().
				Title("Ngày").
				Placeholder("YYYY-MM-DD").
				Value(&m.in.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Ghi chú").
				Value(&m.in.note),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateTransfer

	return m, m.form.Init()
}

func (m TransactionsModel) openDelete(item txItem) (tea.Model, tea.Cmd) {
	m.editID = item.tx.ID
	m.in = &txInput{}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Xóa giao dịch này?").
			Description(item.Title()).
			Affirmative("Xóa").
			Negative("Hủy").
			Value(&m.in.confirm),
	)).WithShowHelp(false)

	m.state = txStateDelete

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateList
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
	case txStateTransfer:
		return m, m.transferCmd()
	case txStateDelete:
		return m, m.deleteCmd()
	}

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateScope:
		if m.loading || m.scopeForm == nil {
			return lipgloss.NewStyle().Padding(2).Render(statusLine("Đang tải tài khoản...", m.err))
		}

		return lipgloss.NewStyle().Padding(1).Render(m.scopeForm.View())

	case txStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(
			titleStyle.Render(*m.scope) + "\n\n" + m.periodPicker.View(),
		)

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Đang tải giao dịch...")
		}

		help := faintStyle.Render("a: thêm | t: chuyển tiền | e: sửa | d: xóa | s: đổi tài khoản | f: đổi thời gian | Esc: quay lại")

		return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + help + "\n" + m.list.View())

	case txStateEditing, txStateTransfer, txStateDelete:
		if m.form == nil {
			return ""
		}

		title := "Thêm giao dịch"

		switch {
		case m.state == txStateTransfer:
			title = "Chuyển tiền"
		case m.state == txStateDelete:
			title = "Xóa giao dịch"
		case m.editID > 0:
			title = fmt.Sprintf("Sửa giao dịch #%d", m.editID)
		}

		return lipgloss.NewStyle().Padding(1).Render(
			statusLine("", m.err) + panelStyle.Render(titleStyle.Render(title)+"\n\n"+m.form.View()),
		)
	}

	return ""
}

func (m *TransactionsModel) refreshListItems(txs []transaction.Transaction) {
	items := make([]list.Item, 0, len(txs))

	// Newest first.
	for i := len(txs) - 1; i >= 0; i-- {
		items = append(items, txItem{tx: txs[i], account: m.names[txs[i].AccountID]})
	}

	m.list.Title = fmt.Sprintf("Giao dịch: %s", *m.scope)
	m.list.SetItems(items)
}

// Messages

type txScopesMsg struct {
	choices  []string
	accounts []account.Account
	err      error
}

func (m TransactionsModel) loadScopesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		choices, err := m.reportService.AccountChoices(ctx)
		if err != nil {
			return txScopesMsg{err: err}
		}

		accounts, err := m.accountService.List(ctx)

		return txScopesMsg{choices: choices, accounts: accounts, err: err}
	}
}

type loadTxsMsg struct {
	txs []transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	scope := *m.scope
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.reportService.Transactions(ctx, scope)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		out := txs[:0]

		for _, t := range txs {
			if period.Contains(t.Date) {
				out = append(out, t)
			}
		}

		return loadTxsMsg{txs: out}
	}
}

type txEditMsg struct {
	tx  *transaction.Transaction
	err error
}

// loadForEditCmd reloads the stored row, since list rows carry amounts and
// types as seen from the selected account.
func (m TransactionsModel) loadForEditCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.txService.Get(ctx, id)

		return txEditMsg{tx: tx, err: err}
	}
}

type saveTxResultMsg struct {
	status string
	err    error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	id := m.editID
	in := *m.in

	return func() tea.Msg {
		amount, err := ParseMoney(in.amount)
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		date, err := ParseDate(in.date)
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		category := strings.TrimSpace(in.category)
		if category == "" && in.note != "" {
			category, _ = m.matchingService.Suggest(ctx, in.note)
		}

		params := transaction.CreateParams{
			Date:      date,
			Type:      in.typ,
			Amount:    amount,
			Category:  category,
			AccountID: in.account,
			Note:      in.note,
		}

		if id > 0 {
			if _, err := m.txService.Update(ctx, id, params); err != nil {
				return saveTxResultMsg{err: err}
			}

			return saveTxResultMsg{status: "Đã cập nhật giao dịch."}
		}

		if _, err := m.txService.Create(ctx, params); err != nil {
			return saveTxResultMsg{err: err}
		}

		return saveTxResultMsg{status: "Đã thêm giao dịch."}
	}
}

func (m TransactionsModel) transferCmd() tea.Cmd {
	in := *m.in
	names := m.names

	return func() tea.Msg {
		if in.account == in.to {
			return saveTxResultMsg{err: errSameAccount}
		}

		amount, err := ParseMoney(in.amount)
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		date, err := ParseDate(in.date)
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.txService.Transfer(ctx, transaction.TransferParams{
			FromID:   in.account,
			FromName: names[in.account],
			ToID:     in.to,
			ToName:   names[in.to],
			Amount:   amount,
			Date:     date,
			Note:     in.note,
		})
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		return saveTxResultMsg{status: fmt.Sprintf("Đã chuyển %s từ %s đến %s.", FormatMoney(amount), names[in.account], names[in.to])}
	}
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	id := m.editID
	confirmed := m.in.confirm

	return func() tea.Msg {
		if !confirmed {
			return saveTxResultMsg{}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, id); err != nil {
			return saveTxResultMsg{err: err}
		}

		return saveTxResultMsg{status: "Đã xóa giao dịch."}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", faintStyle.Render(desc))
}
