package view

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finman/internal/export"
	"github.com/MrJamesThe3rd/finman/internal/report"
)

type exportState int

const (
	exportStateLoading exportState = iota
	exportStateAccount
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service
	reportService *report.Service
	dir           string

	state exportState
	err   error

	form    *huh.Form
	in      *exportInput
	spinner spinner.Model
	summary string
}

type exportInput struct {
	account string
	path    string
}

// NewExportModel creates the export screen. dir is where workbooks are
// suggested to be saved.
func NewExportModel(svc *export.Service, reports *report.Service, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		reportService: reports,
		dir:           dir,
		state:         exportStateLoading,
		in:            &exportInput{account: report.AllAccountsLabel},
		spinner:       s,
	}
}

func (m ExportModel) Init() tea.Cmd {
	return m.loadChoicesCmd()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if choices, ok := msg.(exportChoicesMsg); ok {
		if choices.err != nil {
			m.err = choices.err
			m.state = exportStateResult

			return m, nil
		}

		m.form = huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Xuất báo cáo cho").
				Options(huh.NewOptions(choices.names...)...).
				Value(&m.in.account),
		)).WithWidth(50).WithShowHelp(false)
		m.state = exportStateAccount

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateLoading:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	case exportStateAccount:
		return m.updateAccount(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateAccount(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.in.path = filepath.Join(m.dir, export.DefaultFileName(m.in.account, time.Now()))
	m.form = m.buildPathForm()
	m.state = exportStatePath

	return m, m.form.Init()
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = exportStateLoading
		return m, m.loadChoicesCmd()
	}

	var (
		cmd  tea.Cmd
		done bool
	)

	m.form, cmd, done = updateForm(m.form, msg)
	if !done {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.in.account, m.in.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Đường dẫn tệp").
				Description("Thư mục sẽ được tạo nếu chưa có. Tự thêm đuôi .xlsx.").
				Value(&m.in.path).
				Validate(validateRequired),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateLoading:
		return lipgloss.NewStyle().Padding(1).Render("Đang tải danh sách tài khoản...")

	case exportStateAccount, exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(
			titleStyle.Render("Xuất Excel") + "\n\n" + m.form.View(),
		)

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Đang xuất báo cáo %s...", m.spinner.View(), m.in.account),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(statusLine("", m.err) + "\n(Esc quay lại)")
	}

	header := okStyle.Bold(true).Render("Xuất báo cáo thành công!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.summary,
			faintStyle.Render("(Esc quay lại)"),
		),
	)
}

type exportChoicesMsg struct {
	names []string
	err   error
}

func (m ExportModel) loadChoicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		names, err := m.reportService.AccountChoices(ctx)

		return exportChoicesMsg{names: names, err: err}
	}
}

type exportResultMsg struct {
	body string
	err  error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(account, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		res, err := m.exportService.Export(ctx, account, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: m.exportService.GenerateSummary(res)}
	}
}
