// Package ledgerrepo manages the units of work of account transactions.
package ledgerrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/transactionrepo"
	"github.com/go-petr/pet-ledger/internal/transactionservice"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn         *sql.DB
	timeout      time.Duration
	accounts     *accountrepo.RepoPGS
	transactions *transactionrepo.RepoPGS
}

// NewRepoPGS returns ledger RepoPGS with connection to start transactions.
//
// A positive timeout bounds every unit of work, including waits on row locks.
func NewRepoPGS(conn *sql.DB, timeout time.Duration) *RepoPGS {
	return &RepoPGS{
		conn:         conn,
		timeout:      timeout,
		accounts:     accountrepo.NewRepoPGS(conn),
		transactions: transactionrepo.NewRepoPGS(conn),
	}
}

// ExecTx runs fn within a single database transaction.
//
// Errors returned by fn are passed through unchanged. Failures to begin or
// commit the transaction are reported as errorspkg.ErrStoreUnavailable.
func (r *RepoPGS) ExecTx(ctx context.Context, fn func(ctx context.Context, l transactionservice.Ledger) error) error {
	var fnErr error

	err := dbpkg.ExecTx(ctx, r.conn, r.timeout, func(ctx context.Context, tx *sql.Tx) error {
		fnErr = fn(ctx, newTxLedger(tx))
		return fnErr
	})
	if err == nil {
		return nil
	}

	if fnErr != nil {
		return fnErr
	}

	zerolog.Ctx(ctx).Error().Err(err).Msg("unit of work failed")

	return errorspkg.ErrStoreUnavailable
}

// GetAccount returns the account with the given id without locking it.
func (r *RepoPGS) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	return r.accounts.Get(ctx, id)
}

// ListTransactions returns the account transactions, most recent first.
func (r *RepoPGS) ListTransactions(ctx context.Context, arg domain.StatementParams) ([]domain.Transaction, error) {
	return r.transactions.List(ctx, arg)
}

// txLedger binds account and transaction repositories to one transaction.
type txLedger struct {
	accounts     *accountrepo.RepoPGS
	transactions *transactionrepo.RepoPGS
}

func newTxLedger(tx *sql.Tx) *txLedger {
	return &txLedger{
		accounts:     accountrepo.NewRepoPGS(tx),
		transactions: transactionrepo.NewRepoPGS(tx),
	}
}

func (l *txLedger) GetAccountForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	return l.accounts.GetForUpdate(ctx, id)
}

func (l *txLedger) AddBalance(ctx context.Context, amount decimal.Decimal, id int64) (domain.Account, error) {
	return l.accounts.AddBalance(ctx, amount, id)
}

func (l *txLedger) CreateTransaction(ctx context.Context, accountID int64, value decimal.Decimal, date time.Time) (domain.Transaction, error) {
	return l.transactions.Create(ctx, accountID, value, date)
}

func (l *txLedger) SumWithdrawals(ctx context.Context, accountID int64, from, until time.Time) (decimal.Decimal, error) {
	return l.transactions.SumWithdrawals(ctx, accountID, from, until)
}
