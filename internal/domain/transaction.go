package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/shopspring/decimal"
)

var (
	// ErrNonPositiveAmount indicates zero or negative amount.
	ErrNonPositiveAmount = fmt.Errorf("amount must be positive: %w", errorspkg.ErrInvalidArgument)
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = fmt.Errorf("insufficient balance: %w", errorspkg.ErrInsufficientFunds)
	// ErrTooManyDecimals indicates a money value finer than cents.
	ErrTooManyDecimals = fmt.Errorf("money values must have at most %d decimal places: %w", MoneyScale, errorspkg.ErrInvalidArgument)
	// ErrMoneyOutOfRange indicates a money value beyond what an account can hold.
	ErrMoneyOutOfRange = fmt.Errorf("money values must not exceed %s: %w", MaxMoney.StringFixed(MoneyScale), errorspkg.ErrInvalidArgument)
	// ErrBalanceOutOfRange indicates that the resulting balance would exceed what an account can hold.
	ErrBalanceOutOfRange = fmt.Errorf("balance would exceed %s: %w", MaxMoney.StringFixed(MoneyScale), errorspkg.ErrInvalidArgument)
	// ErrInvalidDateRange indicates that the statement range starts after it ends.
	ErrInvalidDateRange = fmt.Errorf("from date must not be after to date: %w", errorspkg.ErrInvalidArgument)
)

// MoneyScale is the number of decimal places stored for money values.
const MoneyScale = 2

// MaxMoney is the largest money value the store holds, numeric(16,2).
var MaxMoney = decimal.New(1e16-1, -MoneyScale)

// IsCents reports whether d has no digits beyond MoneyScale decimal places.
func IsCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// InMoneyRange reports whether d fits into a stored money value.
func InMoneyRange(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxMoney)
}

// Transaction is an immutable ledger entry of an account.
type Transaction struct {
	ID              int64           `json:"transaction_id"`
	AccountID       int64           `json:"account_id"`
	Value           decimal.Decimal `json:"value"` // positive for deposits, negative for withdrawals
	TransactionDate time.Time       `json:"transaction_date"`
}

// StatementParams selects the transactions of an account.
//
// From is inclusive, Until is exclusive. Nil bounds are open.
type StatementParams struct {
	AccountID int64
	From      *time.Time
	Until     *time.Time
}

// DailyLimitError is returned when a withdrawal would exceed the daily withdrawal limit.
type DailyLimitError struct {
	Limit          decimal.Decimal
	WithdrawnToday decimal.Decimal
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily withdrawal limit exceeded: limit %s, already withdrawn today %s",
		e.Limit.StringFixed(2), e.WithdrawnToday.StringFixed(2))
}

// Unwrap makes errors.Is match errorspkg.ErrDailyLimitExceeded.
func (e *DailyLimitError) Unwrap() error {
	return errorspkg.ErrDailyLimitExceeded
}
