// Package transactionrepo manages repository layer of account transactions.
package transactionrepo

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // postgres dialect
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

const (
	tableTransaction   = "account_transaction"
	colTransactionID   = "transaction_id"
	colAccountID       = "account_id"
	colValue           = "value"
	colTransactionDate = "transaction_date"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    account_transaction (account_id, value, transaction_date)
VALUES
    ($1, $2, $3)
RETURNING transaction_id, account_id, value, transaction_date
`

// Create appends the transaction to the account ledger and then returns it.
func (r *RepoPGS) Create(ctx context.Context, accountID int64, value decimal.Decimal, date time.Time) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountID, value, date)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Value,
		&t.TransactionDate,
	)

	if err != nil {
		l.Error().Err(err).Int64("account_id", accountID).Str("value", value.String()).Send()
		return domain.Transaction{}, errorspkg.ErrStoreUnavailable
	}

	return t, nil
}

const sumWithdrawalsQuery = `
SELECT COALESCE(SUM(-value), 0)
FROM account_transaction
WHERE account_id = $1
    AND value < 0
    AND transaction_date >= $2
    AND transaction_date < $3
`

// SumWithdrawals returns the total magnitude of the account withdrawals
// made in the [from, until) time range.
func (r *RepoPGS) SumWithdrawals(ctx context.Context, accountID int64, from, until time.Time) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	var sum decimal.Decimal

	if err := r.db.QueryRowContext(ctx, sumWithdrawalsQuery, accountID, from, until).Scan(&sum); err != nil {
		l.Error().Err(err).Int64("account_id", accountID).Send()
		return decimal.Zero, errorspkg.ErrStoreUnavailable
	}

	return sum, nil
}

func buildListQuery(arg domain.StatementParams) (string, []any, error) {
	ds := goqu.Dialect("postgres").
		From(tableTransaction).
		Prepared(true).
		Select(colTransactionID, colAccountID, colValue, colTransactionDate).
		Where(goqu.C(colAccountID).Eq(arg.AccountID)).
		Order(goqu.I(colTransactionDate).Desc(), goqu.I(colTransactionID).Desc())

	if arg.From != nil {
		ds = ds.Where(goqu.C(colTransactionDate).Gte(*arg.From))
	}

	if arg.Until != nil {
		ds = ds.Where(goqu.C(colTransactionDate).Lt(*arg.Until))
	}

	return ds.ToSQL()
}

// List returns the account transactions in the requested range, most recent first.
func (r *RepoPGS) List(ctx context.Context, arg domain.StatementParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := buildListQuery(arg)
	if err != nil {
		l.Error().Err(err).Msgf("buildListQuery(%+v)", arg)
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrStoreUnavailable
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Value,
			&t.TransactionDate,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrStoreUnavailable
		}

		items = append(items, t)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrStoreUnavailable
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrStoreUnavailable
	}

	return items, nil
}
