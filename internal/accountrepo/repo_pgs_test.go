package accountrepo

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/test"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

var accountColumns = []string{
	"account_id", "person_id", "balance", "daily_withdrawal_limit", "active_flag", "account_type", "create_date",
}

func accountRow(a domain.Account) []driver.Value {
	return []driver.Value{
		a.ID, a.PersonID, a.Balance.StringFixed(2), a.DailyWithdrawalLimit.StringFixed(2),
		a.ActiveFlag, a.AccountType, a.CreateDate,
	}
}

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New() returned error: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %v", err)
		}
		db.Close()
	})

	return NewRepoPGS(db), mock
}

func TestCreate(t *testing.T) {
	account := test.RandomAccount(7)
	arg := domain.CreateAccountParams{
		PersonID:             account.PersonID,
		Balance:              account.Balance,
		DailyWithdrawalLimit: account.DailyWithdrawalLimit,
		AccountType:          account.AccountType,
	}

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      domain.Account
		wantErr   error
	}{
		{
			name: "OK",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(createQuery).
					WithArgs(arg.PersonID, arg.Balance, arg.DailyWithdrawalLimit, arg.AccountType).
					WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow(account)...))
			},
			want: account,
		},
		{
			name: "ErrPersonNotFound",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(createQuery).
					WillReturnError(&pq.Error{Code: "23503", Constraint: "account_person_id_fkey"})
			},
			wantErr: domain.ErrPersonNotFound,
		},
		{
			name: "ErrNegativeBalance",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(createQuery).
					WillReturnError(&pq.Error{Code: "23514", Constraint: "account_balance_check"})
			},
			wantErr: domain.ErrNegativeBalance,
		},
		{
			name: "ErrNonPositiveLimit",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(createQuery).
					WillReturnError(&pq.Error{Code: "23514", Constraint: "account_daily_withdrawal_limit_check"})
			},
			wantErr: domain.ErrNonPositiveLimit,
		},
		{
			name: "ErrMoneyOutOfRange",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(createQuery).
					WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})
			},
			wantErr: domain.ErrMoneyOutOfRange,
		},
		{
			name: "ErrStoreUnavailable",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(createQuery).WillReturnError(errors.New("connection reset"))
			},
			wantErr: errorspkg.ErrStoreUnavailable,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)
			tc.setupMock(mock)

			got, err := repo.Create(context.Background(), arg)
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

func TestGet(t *testing.T) {
	account := test.RandomAccount(3)

	testCases := []struct {
		name    string
		query   string
		call    func(r *RepoPGS) (domain.Account, error)
		rows    *sqlmock.Rows
		err     error
		wantErr error
	}{
		{
			name:  "Get",
			query: getQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.Get(context.Background(), account.ID)
			},
			rows: sqlmock.NewRows(accountColumns).AddRow(accountRow(account)...),
		},
		{
			name:  "GetForUpdate",
			query: getForUpdateQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.GetForUpdate(context.Background(), account.ID)
			},
			rows: sqlmock.NewRows(accountColumns).AddRow(accountRow(account)...),
		},
		{
			name:  "ErrAccountNotFound",
			query: getQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.Get(context.Background(), account.ID)
			},
			rows:    sqlmock.NewRows(accountColumns),
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:  "ErrStoreUnavailable",
			query: getForUpdateQuery,
			call: func(r *RepoPGS) (domain.Account, error) {
				return r.GetForUpdate(context.Background(), account.ID)
			},
			err:     context.DeadlineExceeded,
			wantErr: errorspkg.ErrStoreUnavailable,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)

			exp := mock.ExpectQuery(tc.query).WithArgs(account.ID)
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnRows(tc.rows)
			}

			got, err := tc.call(repo)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(account, got, test.EquateDecimal()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddBalance(t *testing.T) {
	account := test.RandomAccount(5)
	amount := decimal.RequireFromString("-250.50")

	changed := account
	changed.Balance = account.Balance.Add(amount)

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "OK",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addBalanceQuery).
					WithArgs(amount, account.ID).
					WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow(changed)...))
			},
		},
		{
			name: "ErrAccountNotFound",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addBalanceQuery).
					WithArgs(amount, account.ID).
					WillReturnRows(sqlmock.NewRows(accountColumns))
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "ErrInsufficientFunds",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addBalanceQuery).
					WithArgs(amount, account.ID).
					WillReturnError(&pq.Error{Code: "23514", Constraint: "account_balance_check"})
			},
			wantErr: errorspkg.ErrInsufficientFunds,
		},
		{
			name: "ErrBalanceOutOfRange",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(addBalanceQuery).
					WithArgs(amount, account.ID).
					WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})
			},
			wantErr: domain.ErrBalanceOutOfRange,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)
			tc.setupMock(mock)

			got, err := repo.AddBalance(context.Background(), amount, account.ID)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.True(t, changed.Balance.Equal(got.Balance), "balance %s, want %s", got.Balance, changed.Balance)
		})
	}
}

func TestBlock(t *testing.T) {
	account := test.RandomAccount(9)
	blocked := account
	blocked.ActiveFlag = false

	t.Run("OK", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(blockQuery).
			WithArgs(account.ID).
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(accountRow(blocked)...))

		got, err := repo.Block(context.Background(), account.ID)
		require.NoError(t, err)
		require.False(t, got.ActiveFlag)
		require.WithinDuration(t, account.CreateDate, got.CreateDate, time.Second)
	})

	t.Run("ErrAccountAlreadyBlocked", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(blockQuery).
			WithArgs(account.ID).
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := repo.Block(context.Background(), account.ID)
		require.ErrorIs(t, err, domain.ErrAccountAlreadyBlocked)
		require.ErrorIs(t, err, errorspkg.ErrInvalidState)
	})
}
