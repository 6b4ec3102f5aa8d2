package view

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/matching"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

var errEmptyCategory = errors.New("danh mục không được để trống")

type reviewState int

const (
	reviewStatePeriod reviewState = iota
	reviewStateReviewing
)

// ReviewModel walks through transactions without a category, suggests one
// from the learned rules and remembers what the user picks.
type ReviewModel struct {
	CommonModel
	txService       *transaction.Service
	matchingService *matching.Service

	state        reviewState
	periodPicker PeriodPicker

	queue      []transaction.Transaction
	currentTx  *transaction.Transaction
	totalCount int
	skipped    int

	categoryInput textinput.Model

	status  string
	err     error
	loading bool
}

func NewReviewModel(txSvc *transaction.Service, matchSvc *matching.Service) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Danh mục"
	ti.Width = 40

	return ReviewModel{
		txService:       txSvc,
		matchingService: matchSvc,
		periodPicker:    NewPeriodPicker("Khoảng thời gian", PeriodThisMonth),
		categoryInput:   ti,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return m.periodPicker.Init()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.state = reviewStateReviewing
		m.loading = true

		return m, m.loadQueueCmd(msg)

	case loadQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.queue = msg.txs
		m.totalCount = len(msg.txs)
		m.skipped = 0
		cmd := m.nextCmd()

		return m, cmd

	case suggestionMsg:
		m.currentTx = &msg.tx
		m.status = fmt.Sprintf("Đang phân loại %d/%d", m.totalCount-len(m.queue), m.totalCount)
		m.categoryInput.SetValue(msg.category)
		m.categoryInput.CursorEnd()
		m.categoryInput.Focus()

		return m, textinput.Blink

	case reviewDoneMsg:
		m.currentTx = nil
		m.categoryInput.Blur()
		m.status = "Đã phân loại xong."

		if m.skipped > 0 {
			m.status = fmt.Sprintf("Đã xong, bỏ qua %d giao dịch.", m.skipped)
		}

		if m.totalCount == 0 {
			m.status = "Không có giao dịch nào chưa phân loại."
		}

		return m, nil

	case categorizedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		cmd := m.nextCmd()

		return m, cmd
	}

	if m.state == reviewStatePeriod {
		return m.updatePeriod(msg)
	}

	return m.updateReviewing(msg)
}

func (m ReviewModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m ReviewModel) updateReviewing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.loading {
			return m, nil
		}

		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyTab:
			if m.currentTx != nil {
				m.skipped++
				cmd := m.nextCmd()

				return m, cmd
			}
		case tea.KeyEnter:
			if m.currentTx != nil {
				category := strings.TrimSpace(m.categoryInput.Value())
				if category == "" {
					m.err = errEmptyCategory
					return m, nil
				}

				return m, m.categorizeCmd(*m.currentTx, category)
			}
		}
	}

	var cmd tea.Cmd
	m.categoryInput, cmd = m.categoryInput.Update(msg)

	return m, cmd
}

func (m ReviewModel) View() string {
	if m.state == reviewStatePeriod {
		return lipgloss.NewStyle().Padding(1).Render(
			titleStyle.Render("Phân loại giao dịch") + "\n\n" + m.periodPicker.View(),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Đang tải giao dịch chưa phân loại...")
	}

	if m.currentTx == nil {
		return lipgloss.NewStyle().Padding(2).Render(statusLine(m.status, m.err) + "\n(Esc quay lại)")
	}

	info := fmt.Sprintf(
		"Ngày:     %s\nLoại:     %s\nSố tiền:  %s\nGhi chú:  %s",
		FormatDate(m.currentTx.Date),
		m.currentTx.Type,
		FormatMoney(m.currentTx.Amount),
		m.currentTx.Note,
	)

	return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
		"%s\n%s\n\n%s\n\nDanh mục:\n%s\n\n%s",
		statusLine("", m.err),
		activeStyle(m.status),
		panelStyle.Render(info),
		m.categoryInput.View(),
		faintStyle.Render("(Enter lưu và tiếp, Tab bỏ qua, Esc quay lại)"),
	))
}

type loadQueueMsg struct {
	txs []transaction.Transaction
	err error
}

func (m ReviewModel) loadQueueCmd(period PeriodSelectedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.Uncategorized(ctx)
		if err != nil {
			return loadQueueMsg{err: err}
		}

		var queue []transaction.Transaction

		for _, t := range txs {
			if period.Contains(t.Date) {
				queue = append(queue, t)
			}
		}

		return loadQueueMsg{txs: queue}
	}
}

type suggestionMsg struct {
	tx       transaction.Transaction
	category string
}

type reviewDoneMsg struct{}

// nextCmd pops the next transaction off the queue and looks up a suggested
// category for its note.
func (m *ReviewModel) nextCmd() tea.Cmd {
	if len(m.queue) == 0 {
		return func() tea.Msg { return reviewDoneMsg{} }
	}

	tx := m.queue[0]
	m.queue = m.queue[1:]

	return func() tea.Msg {
		if tx.Note == "" {
			return suggestionMsg{tx: tx}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		category, err := m.matchingService.Suggest(ctx, tx.Note)
		if err != nil {
			slog.Warn("category suggestion failed", "transaction_id", tx.ID, "error", err)
		}

		return suggestionMsg{tx: tx, category: category}
	}
}

type categorizedMsg struct {
	err error
}

func (m ReviewModel) categorizeCmd(tx transaction.Transaction, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.txService.Categorize(ctx, tx.ID, category); err != nil {
			return categorizedMsg{err: err}
		}

		if tx.Note != "" {
			if _, err := m.matchingService.Learn(ctx, tx.Note, category); err != nil {
				slog.Warn("failed to learn category rule", "pattern", tx.Note, "error", err)
			}
		}

		return categorizedMsg{}
	}
}
