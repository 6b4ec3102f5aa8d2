package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/loan"
	"github.com/MrJamesThe3rd/finman/internal/report"
	"github.com/MrJamesThe3rd/finman/internal/saving"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type mocks struct {
	accounts     *report.MockAccountSource
	transactions *report.MockTransactionSource
	loans        *report.MockLoanSource
	savings      *report.MockSavingSource
}

func newService(t *testing.T) (*report.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		accounts:     report.NewMockAccountSource(ctrl),
		transactions: report.NewMockTransactionSource(ctrl),
		loans:        report.NewMockLoanSource(ctrl),
		savings:      report.NewMockSavingSource(ctrl),
	}

	return report.NewService(m.accounts, m.transactions, m.loans, m.savings), m
}

var testAccounts = []account.Account{
	{ID: 1, Name: "Vietcombank", Balance: amt(5000)},
	{ID: 2, Name: "Tiền mặt", Balance: amt(300)},
}

func TestService_Build(t *testing.T) {
	tests := []struct {
		name      string
		account   string
		wantSel   transaction.Selector
		wantFound bool
	}{
		{name: "AllByLabel", account: report.AllAccountsLabel, wantSel: transaction.AllAccounts, wantFound: true},
		{name: "AllByEmpty", account: "", wantSel: transaction.AllAccounts, wantFound: true},
		{name: "OneAccount", account: "Tiền mặt", wantSel: transaction.ForAccount(2, "Tiền mặt"), wantFound: true},
		{name: "UnknownAccount", account: "ACB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			m.accounts.EXPECT().List(gomock.Any()).Return(testAccounts, nil).AnyTimes()

			if tt.wantFound {
				m.transactions.EXPECT().List(gomock.Any(), tt.wantSel).Return([]transaction.Transaction{
					{ID: 1, Date: day(2024, 1, 5), Type: transaction.TypeIncome, Amount: amt(1000), AccountID: 2},
				}, nil)
				m.loans.EXPECT().List(gomock.Any()).Return(nil, nil)
				m.savings.EXPECT().List(gomock.Any()).Return(nil, nil)
			}

			rep, err := svc.Build(context.Background(), tt.account)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, rep.Found)
			assert.Equal(t, "Tiền mặt", rep.AccountNames[2])

			if !tt.wantFound {
				assert.Empty(t, rep.Transactions)
				assert.True(t, rep.Assets.Empty())

				return
			}

			require.Len(t, rep.Transactions, 1)
			assert.Equal(t, "Tiền mặt", rep.AccountName(rep.Transactions[0]))
			assertAmount(t, 1000, rep.Totals.Income)
			require.Len(t, rep.Monthly, 1)
		})
	}
}

func TestService_SortsAllAccountsByDate(t *testing.T) {
	svc, m := newService(t)

	fileOrder := func() []transaction.Transaction {
		return []transaction.Transaction{
			{ID: 1, Date: day(2024, 3, 2), Type: transaction.TypeExpense, Amount: amt(10), AccountID: 1},
			{ID: 2, Date: day(2024, 1, 9), Type: transaction.TypeIncome, Amount: amt(500), AccountID: 2},
			{ID: 3, Date: day(2024, 3, 2), Type: transaction.TypeExpense, Amount: amt(20), AccountID: 2},
			{ID: 4, Date: day(2024, 2, 1), Type: transaction.TypeIncome, Amount: amt(70), AccountID: 1},
		}
	}

	m.accounts.EXPECT().List(gomock.Any()).Return(testAccounts, nil).AnyTimes()
	m.transactions.EXPECT().List(gomock.Any(), transaction.AllAccounts).DoAndReturn(
		func(context.Context, transaction.Selector) ([]transaction.Transaction, error) {
			return fileOrder(), nil
		}).Times(2)
	m.loans.EXPECT().List(gomock.Any()).Return(nil, nil)
	m.savings.EXPECT().List(gomock.Any()).Return(nil, nil)

	ids := func(txs []transaction.Transaction) []int {
		out := make([]int, 0, len(txs))
		for _, tx := range txs {
			out = append(out, tx.ID)
		}

		return out
	}

	rep, err := svc.Build(context.Background(), report.AllAccountsLabel)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(rep.Transactions))

	got, err := svc.Transactions(context.Background(), report.AllAccountsLabel)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(got))
}

func TestService_Build_Errors(t *testing.T) {
	svc, m := newService(t)

	m.accounts.EXPECT().List(gomock.Any()).Return(testAccounts, nil).AnyTimes()
	m.transactions.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.loans.EXPECT().List(gomock.Any()).Return(nil, errors.New("broken loans.csv"))

	_, err := svc.Build(context.Background(), report.AllAccountsLabel)
	assert.ErrorContains(t, err, "listing loans")
}

func TestService_Transactions_UnknownAccount(t *testing.T) {
	svc, m := newService(t)

	m.accounts.EXPECT().List(gomock.Any()).Return(testAccounts, nil)

	got, err := svc.Transactions(context.Background(), "ACB")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_AccountChoices(t *testing.T) {
	svc, m := newService(t)

	m.accounts.EXPECT().List(gomock.Any()).Return(testAccounts, nil)

	got, err := svc.AccountChoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{report.AllAccountsLabel, "Vietcombank", "Tiền mặt"}, got)
}

func TestService_Dashboard(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc, m := newService(t)

	m.accounts.EXPECT().List(gomock.Any()).Return(testAccounts, nil)
	m.transactions.EXPECT().List(gomock.Any(), transaction.AllAccounts).Return([]transaction.Transaction{
		{ID: 1, Date: day(2024, 2, 28), Type: transaction.TypeIncome, Amount: amt(9999)},
		{ID: 2, Date: day(2024, 3, 1), Type: transaction.TypeIncome, Amount: amt(1000)},
		{ID: 3, Date: day(2024, 3, 2), Type: transaction.TypeExpense, Amount: amt(250)},
		{ID: 4, Date: day(2024, 3, 3), Type: transaction.TypeSaving, Amount: amt(100)},
	}, nil)
	m.transactions.EXPECT().Recent(gomock.Any(), 5).Return([]transaction.Transaction{{ID: 4}}, nil)
	m.loans.EXPECT().List(gomock.Any()).Return([]loan.Loan{
		{ID: 1, Status: loan.StatusPending, DueDate: day(2024, 3, 1)},
		{ID: 2, Status: loan.StatusPending, DueDate: day(2024, 3, 20)},
		{ID: 3, Status: loan.StatusPending, DueDate: day(2024, 4, 20)},
		{ID: 4, Status: loan.StatusPaid, DueDate: day(2024, 3, 1)},
	}, nil)
	m.savings.EXPECT().List(gomock.Any()).Return([]saving.Saving{
		{ID: 1, Name: "Mua xe", TargetAmount: amt(1000), CurrentAmount: amt(250)},
	}, nil)

	d, err := svc.Dashboard(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "2024-03", d.Month)
	assertAmount(t, 5300, d.TotalBalance)
	assertAmount(t, 1000, d.MonthTotals.Income)
	assertAmount(t, 250, d.MonthTotals.Expense)
	assertAmount(t, 650, d.MonthTotals.Difference)

	require.Len(t, d.Overdue, 1)
	assert.Equal(t, 1, d.Overdue[0].ID)
	assert.Equal(t, loan.StatusOverdue, d.Overdue[0].Status)

	require.Len(t, d.DueSoon, 1)
	assert.Equal(t, 2, d.DueSoon[0].Loan.ID)
	assert.Equal(t, 5, d.DueSoon[0].Days)

	require.Len(t, d.Savings, 1)
	assert.Equal(t, "25", d.Savings[0].Progress.String())
	assert.Len(t, d.Recent, 1)
}
