package view

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

var errPeriodOrder = errors.New("ngày kết thúc phải sau ngày bắt đầu")

// Period is a reporting window. Budgets here run by calendar month, so
// every preset is aligned to month boundaries.
type Period int

const (
	PeriodThisMonth Period = iota
	PeriodLastMonth
	PeriodLastThreeMonths
	PeriodThisYear
	PeriodAll
	PeriodCustom
)

func Periods() []Period {
	return []Period{PeriodThisMonth, PeriodLastMonth, PeriodLastThreeMonths, PeriodThisYear, PeriodAll, PeriodCustom}
}

func (p Period) String() string {
	switch p {
	case PeriodThisMonth:
		return "Tháng này"
	case PeriodLastMonth:
		return "Tháng trước"
	case PeriodLastThreeMonths:
		return "3 tháng gần đây"
	case PeriodThisYear:
		return "Năm nay"
	case PeriodAll:
		return "Toàn bộ"
	case PeriodCustom:
		return "Tùy chọn"
	}

	return "Không rõ"
}

// Range returns the first and last day of p for the given day. PeriodAll
// and PeriodCustom have no fixed range and return zero times.
func (p Period) Range(day time.Time) (time.Time, time.Time) {
	month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOf := func(first time.Time) time.Time { return first.AddDate(0, 1, -1) }

	switch p {
	case PeriodThisMonth:
		return month, endOf(month)
	case PeriodLastMonth:
		prev := month.AddDate(0, -1, 0)
		return prev, endOf(prev)
	case PeriodLastThreeMonths:
		return month.AddDate(0, -2, 0), endOf(month)
	case PeriodThisYear:
		return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	return time.Time{}, time.Time{}
}

// PeriodSelectedMsg carries the chosen window. From and To are inclusive
// dates and are ignored when All is set.
type PeriodSelectedMsg struct {
	Period Period
	From   time.Time
	To     time.Time
	All    bool
}

// Contains reports whether the date t falls inside the window.
func (m PeriodSelectedMsg) Contains(t time.Time) bool {
	if m.All {
		return true
	}

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return !day.Before(m.From) && !day.After(m.To)
}

func (m PeriodSelectedMsg) String() string {
	if m.All {
		return PeriodAll.String()
	}

	return FormatDate(m.From) + " → " + FormatDate(m.To)
}

// PeriodPicker asks for a Period, and for explicit dates when the user
// picks PeriodCustom. It emits a PeriodSelectedMsg once submitted.
type PeriodPicker struct {
	form *huh.Form
	in   *periodInput
}

type periodInput struct {
	period Period
	from   string
	to     string
}

func NewPeriodPicker(title string, def Period) PeriodPicker {
	in := &periodInput{period: def}

	opts := make([]huh.Option[Period], 0, len(Periods()))
	for _, p := range Periods() {
		opts = append(opts, huh.NewOption(p.String(), p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Period]().
				Title(title).
				Options(opts...).
				Value(&in.period),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Từ ngày").
				Placeholder("YYYY-MM-DD").
				Value(&in.from).
				Validate(validateDate),
			huh.NewInput().
				Title("Đến ngày").
				Placeholder("YYYY-MM-DD").
				Value(&in.to).
				Validate(in.validateTo),
		).WithHideFunc(func() bool { return in.period != PeriodCustom }),
	).WithWidth(40).WithShowHelp(false)

	return PeriodPicker{form: form, in: in}
}

func (p PeriodPicker) Init() tea.Cmd {
	return p.form.Init()
}

func (p PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var (
		cmd  tea.Cmd
		done bool
	)

	p.form, cmd, done = updateForm(p.form, msg)
	if !done {
		return p, cmd
	}

	sel := p.in.selection(today())

	return p, func() tea.Msg { return sel }
}

func (p PeriodPicker) View() string {
	return p.form.View()
}

func (in *periodInput) validateTo(s string) error {
	if err := validateDate(s); err != nil {
		return err
	}

	from, err := ParseDate(in.from)
	if err != nil {
		return nil
	}

	to, _ := ParseDate(s)
	if to.Before(from) {
		return errPeriodOrder
	}

	return nil
}

func (in *periodInput) selection(day time.Time) PeriodSelectedMsg {
	switch in.period {
	case PeriodAll:
		return PeriodSelectedMsg{Period: PeriodAll, All: true}
	case PeriodCustom:
		from, _ := ParseDate(in.from)
		to, _ := ParseDate(in.to)

		return PeriodSelectedMsg{Period: PeriodCustom, From: from, To: to}
	}

	from, to := in.period.Range(day)

	return PeriodSelectedMsg{Period: in.period, From: from, To: to}
}
