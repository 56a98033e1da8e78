// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/shopspring/decimal"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.PersonID,
		&a.Balance,
		&a.DailyWithdrawalLimit,
		&a.ActiveFlag,
		&a.AccountType,
		&a.CreateDate,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    account (person_id, balance, daily_withdrawal_limit, account_type)
VALUES
    ($1, $2, $3, $4)
RETURNING account_id, person_id, balance, daily_withdrawal_limit, active_flag, account_type, create_date
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.PersonID,
		arg.Balance,
		arg.DailyWithdrawalLimit,
		arg.AccountType,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "account_person_id_fkey":
				return domain.Account{}, domain.ErrPersonNotFound
			case "account_balance_check":
				return domain.Account{}, domain.ErrNegativeBalance
			case "account_daily_withdrawal_limit_check":
				return domain.Account{}, domain.ErrNonPositiveLimit
			}

			if pqErr.Code.Name() == "numeric_value_out_of_range" {
				return domain.Account{}, domain.ErrMoneyOutOfRange
			}
		}

		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}

const getQuery = `
SELECT
	account_id, person_id, balance, daily_withdrawal_limit, active_flag, account_type, create_date
FROM account
WHERE account_id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = `
SELECT
	account_id, person_id, balance, daily_withdrawal_limit, active_flag, account_type, create_date
FROM account
WHERE account_id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row
// until the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Int64("account_id", id).Msg("account not found")
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Int64("account_id", id).Send()

		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE account
SET balance = balance + $1
WHERE account_id = $2
RETURNING account_id, person_id, balance, daily_withdrawal_limit, active_flag, account_type, create_date
`

// AddBalance changes the account's balance by amount and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount decimal.Decimal, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, addBalanceQuery, amount, id))
	if err != nil {
		l.Error().Err(err).Str("amount", amount.String()).Int64("account_id", id).Send()

		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Constraint == "account_balance_check" {
				return domain.Account{}, domain.ErrInsufficientFunds
			}

			if pqErr.Code.Name() == "numeric_value_out_of_range" {
				return domain.Account{}, domain.ErrBalanceOutOfRange
			}
		}

		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}

const blockQuery = `
UPDATE account
SET active_flag = false
WHERE account_id = $1 AND active_flag
RETURNING account_id, person_id, balance, daily_withdrawal_limit, active_flag, account_type, create_date
`

// Block deactivates the active account with the given id.
//
// It returns domain.ErrAccountAlreadyBlocked when no active account matches the id.
// The conditional update makes concurrent blocks succeed exactly once.
func (r *RepoPGS) Block(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, blockQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Int64("account_id", id).Msg("account already blocked")
			return domain.Account{}, domain.ErrAccountAlreadyBlocked
		}

		l.Error().Err(err).Int64("account_id", id).Send()

		return domain.Account{}, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}
