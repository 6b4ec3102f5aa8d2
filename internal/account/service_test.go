package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/validate"
)

var existing = []account.Account{
	{ID: 1, Name: "Vietcombank", Balance: decimal.NewFromInt(1000), Type: account.TypeBank},
	{ID: 2, Name: "Ví", Balance: decimal.NewFromInt(50), Type: account.TypeCash},
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.Params
		setupMock func(m *account.MockRepository)
		wantID    int
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: account.Params{Name: "  MoMo ", Balance: decimal.NewFromInt(200), Type: account.TypeEWallet},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil)
				m.EXPECT().
					SaveAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a account.Account) error {
						assert.Equal(t, "MoMo", a.Name)
						return nil
					})
			},
			wantID: 3,
		},
		{
			name:   "DuplicateIgnoresCase",
			params: account.Params{Name: "VIETCOMBANK", Balance: decimal.Zero, Type: account.TypeBank},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil)
			},
			wantErr: account.ErrDuplicate,
		},
		{
			name:   "SameNameOtherType",
			params: account.Params{Name: "Vietcombank", Balance: decimal.Zero, Type: account.TypeCash},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil)
				m.EXPECT().SaveAccount(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantID: 3,
		},
		{
			name:    "NegativeBalance",
			params:  account.Params{Name: "Cash", Balance: decimal.NewFromInt(-5), Type: account.TypeCash},
			wantErr: validate.ErrInvalid,
		},
		{
			name:    "EmptyName",
			params:  account.Params{Name: "  ", Type: account.TypeCash},
			wantErr: validate.ErrInvalid,
		},
		{
			name:    "UnknownType",
			params:  account.Params{Name: "Gold", Type: "Vàng"},
			wantErr: validate.ErrInvalid,
		},
		{
			name:   "EmptyStoreStartsAtOne",
			params: account.Params{Name: "Cash", Type: account.TypeCash},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(nil, nil)
				m.EXPECT().SaveAccount(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		id        int
		params    account.Params
		setupMock func(m *account.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "KeepOwnName",
			id:     1,
			params: account.Params{Name: "Vietcombank", Balance: decimal.NewFromInt(9), Type: account.TypeBank},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil)
				m.EXPECT().SaveAccount(gomock.Any(), account.Account{
					ID: 1, Name: "Vietcombank", Balance: decimal.NewFromInt(9), Type: account.TypeBank,
				}).Return(nil)
			},
		},
		{
			name:   "CollidesWithOther",
			id:     2,
			params: account.Params{Name: "vietcombank", Type: account.TypeBank},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil)
			},
			wantErr: account.ErrDuplicate,
		},
		{
			name:   "Missing",
			id:     9,
			params: account.Params{Name: "X", Type: account.TypeBank},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil)
			},
			wantErr: account.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			tt.setupMock(repo)

			_, err := account.NewService(repo).Update(context.Background(), tt.id, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("NotifiesReferences", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		refA := account.NewMockReferenceUpdater(ctrl)
		refB := account.NewMockReferenceUpdater(ctrl)

		moved := map[int]int{3: 2}
		repo.EXPECT().DeleteAccount(gomock.Any(), 2).Return(moved, nil)
		refA.EXPECT().RemapAccounts(gomock.Any(), 2, moved).Return(nil)
		refB.EXPECT().RemapAccounts(gomock.Any(), 2, moved).Return(errors.New("disk full"))

		err := account.NewService(repo, refA, refB).Delete(context.Background(), 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("NotFoundSkipsReferences", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		ref := account.NewMockReferenceUpdater(ctrl)

		repo.EXPECT().DeleteAccount(gomock.Any(), 7).Return(nil, account.ErrNotFound)

		err := account.NewService(repo, ref).Delete(context.Background(), 7)
		assert.ErrorIs(t, err, account.ErrNotFound)
	})
}

func TestService_FindByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().ListAccounts(gomock.Any()).Return(existing, nil).Times(2)

	svc := account.NewService(repo)

	got, err := svc.FindByName(context.Background(), "Ví")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ID)

	_, err = svc.FindByName(context.Background(), "Nope")
	assert.ErrorIs(t, err, account.ErrNotFound)
}
