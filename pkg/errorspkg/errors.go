// Package errorspkg provides common app errors.
//
// The errors below are kinds: domain errors wrap one of them so that
// delivery layers can map a failure to a response with errors.Is.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrStoreUnavailable indicates that the store failed or timed out; no partial write happened.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound indicates that the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState indicates that the operation is not permitted in the entity current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidArgument indicates that the request carries an invalid value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientFunds indicates that the balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDailyLimitExceeded indicates that the same-day withdrawals would exceed the account limit.
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit exceeded")
	// ErrConflict indicates that the entity already exists.
	ErrConflict = errors.New("already exists")
)
