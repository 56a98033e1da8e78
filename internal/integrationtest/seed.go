package integrationtest

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/personrepo"
	"github.com/go-petr/pet-ledger/internal/transactionrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// SeedPerson creates random Person.
func SeedPerson(t *testing.T, db dbpkg.SQLInterface) domain.Person {
	t.Helper()

	arg := domain.CreatePersonParams{
		Name:      randompkg.Name(),
		Document:  randompkg.Document(),
		BirthDate: randompkg.BirthDate(),
	}

	personRepo := personrepo.NewRepoPGS(db)

	person, err := personRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("personRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return person
}

// SeedAccount creates active Account with the given balance and daily withdrawal limit.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, personID int64, balance, limit string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		PersonID:             personID,
		Balance:              decimal.RequireFromString(balance),
		DailyWithdrawalLimit: decimal.RequireFromString(limit),
		AccountType:          randompkg.AccountType(),
	}

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedTransaction creates Transaction with the given value at the current time.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, accountID int64, value string) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewRepoPGS(db)
	v := decimal.RequireFromString(value)

	tr, err := transactionRepo.Create(context.Background(), accountID, v, time.Now().UTC())
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %v, %v) returned error: %v", accountID, value, err)
	}

	return tr
}
