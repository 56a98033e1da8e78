// Package transactionservice manages business logic layer of account transactions.
//
// Deposits and withdrawals run inside a single unit of work of the Store: the
// account row is locked, checked, changed and a ledger entry is appended, all
// in one commit. Nothing is cached between calls.
package transactionservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Ledger provides the data access available inside a unit of work.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Ledger interface {
	// GetAccountForUpdate returns the account and holds its row lock until the unit of work ends.
	GetAccountForUpdate(ctx context.Context, id int64) (domain.Account, error)
	AddBalance(ctx context.Context, amount decimal.Decimal, id int64) (domain.Account, error)
	CreateTransaction(ctx context.Context, accountID int64, value decimal.Decimal, date time.Time) (domain.Transaction, error)
	SumWithdrawals(ctx context.Context, accountID int64, from, until time.Time) (decimal.Decimal, error)
}

// Store provides data access layer interface needed by transaction service layer.
type Store interface {
	// ExecTx runs fn in one atomic unit: everything fn wrote is committed when it
	// returns nil and nothing is when it returns an error.
	ExecTx(ctx context.Context, fn func(ctx context.Context, l Ledger) error) error
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	ListTransactions(ctx context.Context, arg domain.StatementParams) ([]domain.Transaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// New returns transaction service struct to manage deposits, withdrawals and statements.
//
// loc defines the calendar day used by the daily withdrawal limit.
func New(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// DayWindow returns the calendar day of t in loc as the [from, until) range.
func DayWindow(t time.Time, loc *time.Location) (from, until time.Time) {
	t = t.In(loc)
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	until = from.AddDate(0, 0, 1)

	return from, until
}

// Deposit adds amount to the active account balance and records the deposit.
func (s *Service) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !amount.IsPositive() {
		return domain.Account{}, domain.ErrNonPositiveAmount
	}

	if !domain.IsCents(amount) {
		return domain.Account{}, domain.ErrTooManyDecimals
	}

	if !domain.InMoneyRange(amount) {
		return domain.Account{}, domain.ErrMoneyOutOfRange
	}

	now := s.now()

	var result domain.Account

	err := s.store.ExecTx(ctx, func(ctx context.Context, ledger Ledger) error {
		account, err := ledger.GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		if !account.ActiveFlag {
			return domain.ErrAccountInactive
		}

		if !domain.InMoneyRange(account.Balance.Add(amount)) {
			return domain.ErrBalanceOutOfRange
		}

		result, err = ledger.AddBalance(ctx, amount, accountID)
		if err != nil {
			return err
		}

		_, err = ledger.CreateTransaction(ctx, accountID, amount, now)

		return err
	})
	if err != nil {
		l.Info().Err(err).Int64("account_id", accountID).Str("amount", amount.String()).Msg("deposit rejected")
		return domain.Account{}, err
	}

	return result, nil
}

// Withdraw subtracts amount from the active account balance and records the withdrawal.
//
// The balance must cover amount and the withdrawals of the current calendar day,
// including this one, must not exceed the account daily withdrawal limit.
// Reaching the limit exactly is allowed.
func (s *Service) Withdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !amount.IsPositive() {
		return domain.Account{}, domain.ErrNonPositiveAmount
	}

	if !domain.IsCents(amount) {
		return domain.Account{}, domain.ErrTooManyDecimals
	}

	if !domain.InMoneyRange(amount) {
		return domain.Account{}, domain.ErrMoneyOutOfRange
	}

	now := s.now()
	from, until := DayWindow(now, s.loc)

	var result domain.Account

	err := s.store.ExecTx(ctx, func(ctx context.Context, ledger Ledger) error {
		// The row lock serializes withdrawals on this account, so the sum below
		// sees every withdrawal committed before us.
		account, err := ledger.GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		if !account.ActiveFlag {
			return domain.ErrAccountInactive
		}

		if account.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		withdrawnToday, err := ledger.SumWithdrawals(ctx, accountID, from, until)
		if err != nil {
			return err
		}

		if withdrawnToday.Add(amount).GreaterThan(account.DailyWithdrawalLimit) {
			return &domain.DailyLimitError{
				Limit:          account.DailyWithdrawalLimit,
				WithdrawnToday: withdrawnToday,
			}
		}

		result, err = ledger.AddBalance(ctx, amount.Neg(), accountID)
		if err != nil {
			return err
		}

		_, err = ledger.CreateTransaction(ctx, accountID, amount.Neg(), now)

		return err
	})
	if err != nil {
		l.Info().Err(err).Int64("account_id", accountID).Str("amount", amount.String()).Msg("withdrawal rejected")
		return domain.Account{}, err
	}

	return result, nil
}

// GetStatement returns the account transactions in the requested range, most recent first.
func (s *Service) GetStatement(ctx context.Context, arg domain.StatementParams) ([]domain.Transaction, error) {
	if arg.From != nil && arg.Until != nil && arg.From.After(*arg.Until) {
		return nil, domain.ErrInvalidDateRange
	}

	if _, err := s.store.GetAccount(ctx, arg.AccountID); err != nil {
		return nil, err
	}

	return s.store.ListTransactions(ctx, arg)
}

// Location returns the time zone of the ledger calendar day.
func (s *Service) Location() *time.Location {
	return s.loc
}
