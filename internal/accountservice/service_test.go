package accountservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/test"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

func TestCreate(t *testing.T) {
	person := test.RandomPerson()
	account := test.RandomAccount(person.ID)

	arg := domain.CreateAccountParams{
		PersonID:             person.ID,
		Balance:              account.Balance,
		DailyWithdrawalLimit: account.DailyWithdrawalLimit,
		AccountType:          account.AccountType,
	}

	testCases := []struct {
		name       string
		arg        func() domain.CreateAccountParams
		buildStubs func(repo *MockRepo, personService *MockPersonService)
		want       domain.Account
		wantErr    error
	}{
		{
			name: "OK",
			arg:  func() domain.CreateAccountParams { return arg },
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Eq(person.ID)).Times(1).Return(person, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).Times(1).Return(account, nil)
			},
			want: account,
		},
		{
			name: "ZeroOpeningBalance",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.Balance = decimal.Zero
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Eq(person.ID)).Times(1).Return(person, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
			},
			want: account,
		},
		{
			name: "NegativeBalance",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.Balance = decimal.RequireFromString("-0.01")
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNegativeBalance,
		},
		{
			name: "ZeroLimit",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.DailyWithdrawalLimit = decimal.Zero
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNonPositiveLimit,
		},
		{
			name: "SubCentLimit",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.DailyWithdrawalLimit = decimal.RequireFromString("100.005")
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrTooManyDecimals,
		},
		{
			name: "BalanceOutOfRange",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.Balance = decimal.RequireFromString("100000000000000.00")
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrMoneyOutOfRange,
		},
		{
			name: "LimitOutOfRange",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.DailyWithdrawalLimit = domain.MaxMoney.Add(decimal.RequireFromString("0.01"))
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInvalidArgument,
		},
		{
			name: "LimitAtUpperBound",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.DailyWithdrawalLimit = domain.MaxMoney
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Eq(person.ID)).Times(1).Return(person, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(account, nil)
			},
			want: account,
		},
		{
			name: "UnsupportedAccountType",
			arg: func() domain.CreateAccountParams {
				a := arg
				a.AccountType = "SAVINGS"
				return a
			},
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInvalidArgument,
		},
		{
			name: "PersonNotFound",
			arg:  func() domain.CreateAccountParams { return arg },
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Eq(person.ID)).
					Times(1).
					Return(domain.Person{}, domain.ErrPersonNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrPersonNotFound,
		},
		{
			name: "PersonDeletedBeforeInsert",
			arg:  func() domain.CreateAccountParams { return arg },
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Eq(person.ID)).Times(1).Return(person, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.Account{}, domain.ErrPersonNotFound)
			},
			wantErr: errorspkg.ErrNotFound,
		},
		{
			name: "RepoErr",
			arg:  func() domain.CreateAccountParams { return arg },
			buildStubs: func(repo *MockRepo, personService *MockPersonService) {
				personService.EXPECT().Get(gomock.Any(), gomock.Eq(person.ID)).Times(1).Return(person, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrStoreUnavailable)
			},
			wantErr: errorspkg.ErrStoreUnavailable,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			personService := NewMockPersonService(ctrl)
			tc.buildStubs(repo, personService)

			s := New(repo, personService)

			got, err := s.Create(context.Background(), tc.arg())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)

				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got, test.EquateDecimal()); diff != "" {
				t.Errorf("Create() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetBalance(t *testing.T) {
	account := test.RandomAccount(1)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		want       domain.Balance
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
			},
			want: domain.Balance{AccountID: account.ID, Balance: account.Balance},
		},
		{
			name: "AccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantErr: errorspkg.ErrNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, NewMockPersonService(ctrl))

			got, err := s.GetBalance(context.Background(), account.ID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got, test.EquateDecimal()); diff != "" {
				t.Errorf("GetBalance() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlock(t *testing.T) {
	account := test.RandomAccount(1)

	blocked := account
	blocked.ActiveFlag = false

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Block(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(blocked, nil)
			},
		},
		{
			name: "AccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Block(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "AlreadyBlocked",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(blocked, nil)
				repo.EXPECT().Block(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountAlreadyBlocked)
			},
			wantErr: errorspkg.ErrInvalidState,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo, NewMockPersonService(ctrl))

			got, err := s.Block(context.Background(), account.ID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)

				return
			}

			require.NoError(t, err)
			require.False(t, got.ActiveFlag)
		})
	}
}

func TestBlockTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	account := test.RandomAccount(1)
	blocked := account
	blocked.ActiveFlag = false

	repo := NewMockRepo(ctrl)
	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), account.ID).Return(account, nil),
		repo.EXPECT().Block(gomock.Any(), account.ID).Return(blocked, nil),
		repo.EXPECT().Get(gomock.Any(), account.ID).Return(blocked, nil),
		repo.EXPECT().Block(gomock.Any(), account.ID).Return(domain.Account{}, domain.ErrAccountAlreadyBlocked),
	)

	s := New(repo, NewMockPersonService(ctrl))

	got, err := s.Block(context.Background(), account.ID)
	require.NoError(t, err)
	require.False(t, got.ActiveFlag)

	_, err = s.Block(context.Background(), account.ID)
	require.ErrorIs(t, err, domain.ErrAccountAlreadyBlocked)
}
