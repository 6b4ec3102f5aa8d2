package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// statusLine renders a one-line message above a view, red for errors.
func statusLine(status string, err error) string {
	if err != nil {
		return errStyle.Render("Lỗi: "+err.Error()) + "\n"
	}

	if status == "" {
		return ""
	}

	return faintStyle.Render(status) + "\n"
}

// newTable builds a focused table with the shared header and selection styles.
func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func tableBox(t table.Model) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(t.View())
}

// updateForm forwards msg to form and reports whether it was submitted.
func updateForm(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd, bool) {
	f, cmd := form.Update(msg)
	if ff, ok := f.(*huh.Form); ok {
		form = ff
	}

	return form, cmd, form.State == huh.StateCompleted
}

// progressBar draws a filled bar for a percentage. Values past 100 fill the
// bar completely and are drawn in green.
func progressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int(pct / 100 * float64(width))
	filled = max(0, min(filled, width))

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	if pct >= 100 {
		style = okStyle
	}

	return style.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", width-filled))
}
