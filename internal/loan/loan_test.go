package loan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finman/internal/loan"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoan_CheckDueStatus(t *testing.T) {
	due := date(2024, 3, 10)

	tests := []struct {
		name   string
		status loan.Status
		due    time.Time
		now    time.Time
		want   loan.Status
	}{
		{
			name:   "BeforeDueDate",
			status: loan.StatusPending,
			due:    due,
			now:    date(2024, 3, 9),
			want:   loan.StatusPending,
		},
		{
			name:   "ExactlyMidnightOfDueDate",
			status: loan.StatusPending,
			due:    due,
			now:    due,
			want:   loan.StatusPending,
		},
		{
			name:   "DuringDueDate",
			status: loan.StatusPending,
			due:    due,
			now:    due.Add(time.Second),
			want:   loan.StatusOverdue,
		},
		{
			name:   "AfterDueDate",
			status: loan.StatusPending,
			due:    due,
			now:    date(2024, 4, 1),
			want:   loan.StatusOverdue,
		},
		{
			name:   "PaidStaysPaid",
			status: loan.StatusPaid,
			due:    due,
			now:    date(2025, 1, 1),
			want:   loan.StatusPaid,
		},
		{
			name:   "NoDueDate",
			status: loan.StatusPending,
			now:    date(2025, 1, 1),
			want:   loan.StatusPending,
		},
		{
			name:   "OverdueStaysOverdue",
			status: loan.StatusOverdue,
			due:    due,
			now:    date(2024, 3, 20),
			want:   loan.StatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := loan.Loan{ID: 1, Status: tt.status, DueDate: tt.due}

			got := l.CheckDueStatus(tt.now)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, got, got.CheckDueStatus(tt.now))
			assert.Equal(t, tt.status, l.Status)
		})
	}
}

func TestLoan_CheckDueStatus_UsesNowLocation(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*60*60)
	l := loan.Loan{Status: loan.StatusPending, DueDate: date(2024, 3, 10)}

	// 2024-03-09 20:00 UTC is already 2024-03-10 03:00 in Ho Chi Minh City.
	now := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC).In(hcm)

	assert.Equal(t, loan.StatusOverdue, l.CheckDueStatus(now).Status)
	assert.Equal(t, loan.StatusPending, l.CheckDueStatus(now.UTC()).Status)
}

func TestLoan_DaysUntilDue(t *testing.T) {
	l := loan.Loan{DueDate: date(2024, 3, 10)}

	assert.Equal(t, 3, l.DaysUntilDue(time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 0, l.DaysUntilDue(date(2024, 3, 10)))
	assert.Equal(t, -5, l.DaysUntilDue(date(2024, 3, 15)))
}

func TestLoan_MatchesAccount(t *testing.T) {
	borrow := loan.Loan{Type: loan.TypeBorrow, LenderName: "Ngân hàng", BorrowerName: "Vietcombank"}
	lend := loan.Loan{Type: loan.TypeLend, LenderName: "Vietcombank", BorrowerName: "Minh"}

	assert.True(t, borrow.MatchesAccount("Vietcombank"))
	assert.False(t, borrow.MatchesAccount("Ngân hàng"))
	assert.True(t, lend.MatchesAccount("Vietcombank"))
	assert.False(t, lend.MatchesAccount("Minh"))
}
