// Package domain provides definitions of all entities.
package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = fmt.Errorf("account %w", errorspkg.ErrNotFound)
	// ErrAccountInactive indicates that the account is blocked and cannot move money.
	ErrAccountInactive = fmt.Errorf("account is inactive: %w", errorspkg.ErrInvalidState)
	// ErrAccountAlreadyBlocked indicates that the account has been blocked before.
	ErrAccountAlreadyBlocked = fmt.Errorf("account is already blocked: %w", errorspkg.ErrInvalidState)
	// ErrNegativeBalance indicates negative opening balance.
	ErrNegativeBalance = fmt.Errorf("balance must not be negative: %w", errorspkg.ErrInvalidArgument)
	// ErrNonPositiveLimit indicates zero or negative daily withdrawal limit.
	ErrNonPositiveLimit = fmt.Errorf("daily withdrawal limit must be positive: %w", errorspkg.ErrInvalidArgument)
	// ErrInvalidAccountType indicates unsupported account type.
	ErrInvalidAccountType = fmt.Errorf("account type is not supported: %w", errorspkg.ErrInvalidArgument)
)

// Account holds the balance and withdrawal settings of a person account.
type Account struct {
	ID                   int64           `json:"account_id"`
	PersonID             int64           `json:"person_id"`
	Balance              decimal.Decimal `json:"balance"`
	DailyWithdrawalLimit decimal.Decimal `json:"daily_withdrawal_limit"`
	ActiveFlag           bool            `json:"active_flag"`
	AccountType          string          `json:"account_type"`
	CreateDate           time.Time       `json:"create_date"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	PersonID             int64           `json:"person_id"`
	Balance              decimal.Decimal `json:"balance"`
	DailyWithdrawalLimit decimal.Decimal `json:"daily_withdrawal_limit"`
	AccountType          string          `json:"account_type"`
}

// Balance is the current balance of an account.
type Balance struct {
	AccountID int64           `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}
