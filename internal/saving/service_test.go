package saving_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finman/internal/saving"
	"github.com/MrJamesThe3rd/finman/internal/validate"
)

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestSaving_Progress(t *testing.T) {
	tests := []struct {
		name    string
		target  int64
		current int64
		want    string
	}{
		{name: "Half", target: 1000, current: 500, want: "50"},
		{name: "Empty", target: 1000, current: 0, want: "0"},
		{name: "OverFunded", target: 1000, current: 1500, want: "150"},
		{name: "ZeroTarget", target: 0, current: 300, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := saving.Saving{TargetAmount: amt(tt.target), CurrentAmount: amt(tt.current)}
			assert.Equal(t, tt.want, s.Progress().String())
		})
	}
}

func TestSaving_Remaining(t *testing.T) {
	assert.True(t, amt(400).Equal(saving.Saving{TargetAmount: amt(1000), CurrentAmount: amt(600)}.Remaining()))
	assert.True(t, saving.Saving{TargetAmount: amt(1000), CurrentAmount: amt(1600)}.Remaining().IsZero())
	assert.True(t, saving.Saving{TargetAmount: amt(1000), CurrentAmount: amt(1000)}.Reached())
	assert.False(t, saving.Saving{}.Reached())
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    saving.Params
		setupMock func(m *saving.MockRepository)
		wantErr   error
	}

	valid := saving.Params{
		Name:         " Mua xe ",
		TargetAmount: amt(30000000),
		Deadline:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		AccountID:    1,
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *saving.MockRepository) {
				m.EXPECT().
					InsertSaving(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s saving.Saving) (saving.Saving, error) {
						s.ID = 2
						return s, nil
					})
			},
		},
		{
			name:    "ZeroTarget",
			params:  saving.Params{Name: "Du lịch"},
			wantErr: validate.ErrInvalid,
		},
		{
			name:    "BlankName",
			params:  saving.Params{Name: " ", TargetAmount: amt(1)},
			wantErr: validate.ErrInvalid,
		},
		{
			name:   "RepoError",
			params: valid,
			setupMock: func(m *saving.MockRepository) {
				m.EXPECT().InsertSaving(gomock.Any(), gomock.Any()).Return(saving.Saving{}, errors.New("disk full"))
			},
			wantErr: errors.New("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := saving.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := saving.NewService(repo, nil).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, validate.ErrInvalid) {
					assert.ErrorIs(t, err, validate.ErrInvalid)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 2, got.ID)
			assert.Equal(t, "Mua xe", got.Name)
		})
	}
}

func TestService_Deposit(t *testing.T) {
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("BooksTransactionOnLinkedAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := saving.NewMockRepository(ctrl)
		ledger := saving.NewMockLedger(ctrl)

		repo.EXPECT().GetSaving(gomock.Any(), 1).Return(saving.Saving{
			ID: 1, Name: "Mua xe", TargetAmount: amt(1000), CurrentAmount: amt(200), AccountID: 3,
		}, nil)
		repo.EXPECT().SaveSaving(gomock.Any(), gomock.Any()).Return(nil)
		ledger.EXPECT().RecordDeposit(gomock.Any(), 3, "Mua xe", amt(300), when).Return(nil)

		got, err := saving.NewService(repo, ledger).Deposit(context.Background(), 1, amt(300), when)
		require.NoError(t, err)
		assert.True(t, amt(500).Equal(got.CurrentAmount))
	})

	t.Run("LedgerFailureRestoresGoal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := saving.NewMockRepository(ctrl)
		ledger := saving.NewMockLedger(ctrl)

		goal := saving.Saving{ID: 1, Name: "Mua xe", TargetAmount: amt(1000), CurrentAmount: amt(200), AccountID: 3}

		var saved []decimal.Decimal

		repo.EXPECT().GetSaving(gomock.Any(), 1).Return(goal, nil)
		repo.EXPECT().SaveSaving(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sv saving.Saving) error {
				saved = append(saved, sv.CurrentAmount)
				return nil
			}).Times(2)
		ledger.EXPECT().RecordDeposit(gomock.Any(), 3, "Mua xe", amt(300), when).
			Return(errors.New("transactions.csv is read-only"))

		_, err := saving.NewService(repo, ledger).Deposit(context.Background(), 1, amt(300), when)
		require.ErrorContains(t, err, "recording deposit")
		require.Len(t, saved, 2)
		assert.True(t, amt(500).Equal(saved[0]))
		assert.True(t, amt(200).Equal(saved[1]))
	})

	t.Run("UnlinkedGoalSkipsLedger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := saving.NewMockRepository(ctrl)
		ledger := saving.NewMockLedger(ctrl)

		repo.EXPECT().GetSaving(gomock.Any(), 1).Return(saving.Saving{ID: 1, TargetAmount: amt(1000)}, nil)
		repo.EXPECT().SaveSaving(gomock.Any(), gomock.Any()).Return(nil)

		_, err := saving.NewService(repo, ledger).Deposit(context.Background(), 1, amt(10), when)
		require.NoError(t, err)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := saving.NewMockRepository(ctrl)

		_, err := saving.NewService(repo, nil).Deposit(context.Background(), 1, amt(-5), when)
		assert.ErrorIs(t, err, validate.ErrInvalid)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := saving.NewMockRepository(ctrl)
		repo.EXPECT().GetSaving(gomock.Any(), 7).Return(saving.Saving{}, saving.ErrNotFound)

		_, err := saving.NewService(repo, nil).Deposit(context.Background(), 7, amt(5), when)
		assert.ErrorIs(t, err, saving.ErrNotFound)
	})
}

func TestService_RemapAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	savings := []saving.Saving{
		{ID: 1, AccountID: 1},
		{ID: 2, AccountID: 2},
		{ID: 3, AccountID: 3},
		{ID: 4},
	}

	repo := saving.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateSavings(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*saving.Saving) bool) error {
			for i := range savings {
				fn(&savings[i])
			}

			return nil
		})

	err := saving.NewService(repo, nil).RemapAccounts(context.Background(), 2, map[int]int{3: 2})
	require.NoError(t, err)

	got := []int{}
	for _, s := range savings {
		got = append(got, s.AccountID)
	}

	assert.Equal(t, []int{1, 0, 2, 0}, got)
}

func TestService_ForAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := saving.NewMockRepository(ctrl)
	repo.EXPECT().ListSavings(gomock.Any()).Return([]saving.Saving{
		{ID: 1, AccountID: 1},
		{ID: 2, AccountID: 2},
		{ID: 3, AccountID: 1},
	}, nil)

	got, err := saving.NewService(repo, nil).ForAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].ID)
}
