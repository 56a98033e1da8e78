// Package test provides shared test helpers.
package test

import (
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// EquateDecimal returns a cmp option that compares decimals by value, so 10 equals 10.00.
func EquateDecimal() cmp.Option {
	return cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
}

// RandomPerson returns random person.
func RandomPerson() domain.Person {
	return domain.Person{
		ID:        randompkg.IntBetween(1, 100),
		Name:      randompkg.Name(),
		Document:  randompkg.Document(),
		BirthDate: randompkg.BirthDate(),
	}
}

// RandomAccount returns random active account owned by the given person.
func RandomAccount(personID int64) domain.Account {
	return domain.Account{
		ID:                   randompkg.IntBetween(1, 100),
		PersonID:             personID,
		Balance:              randompkg.MoneyAmountBetween(1000, 10_000),
		DailyWithdrawalLimit: randompkg.MoneyAmountBetween(100, 1000),
		ActiveFlag:           true,
		AccountType:          randompkg.AccountType(),
		CreateDate:           time.Now().Truncate(time.Second).UTC(),
	}
}
