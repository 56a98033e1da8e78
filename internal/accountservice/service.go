// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/accounttypepkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	Block(ctx context.Context, id int64) (domain.Account, error)
}

// PersonService provides the person lookup needed to open accounts.
type PersonService interface {
	Get(ctx context.Context, id int64) (domain.Person, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo          Repo
	personService PersonService
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, ps PersonService) *Service {
	return &Service{
		repo:          ar,
		personService: ps,
	}
}

// Create opens an active account for an existing person.
//
// The opening balance is the seed of the account ledger and is not recorded as a transaction.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	switch {
	case arg.Balance.IsNegative():
		return domain.Account{}, domain.ErrNegativeBalance
	case !arg.DailyWithdrawalLimit.IsPositive():
		return domain.Account{}, domain.ErrNonPositiveLimit
	case !domain.IsCents(arg.Balance), !domain.IsCents(arg.DailyWithdrawalLimit):
		return domain.Account{}, domain.ErrTooManyDecimals
	case !domain.InMoneyRange(arg.Balance), !domain.InMoneyRange(arg.DailyWithdrawalLimit):
		return domain.Account{}, domain.ErrMoneyOutOfRange
	case !accounttypepkg.IsSupportedAccountType(arg.AccountType):
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	if _, err := s.personService.Get(ctx, arg.PersonID); err != nil {
		l.Info().Err(err).Int64("person_id", arg.PersonID).Msg("cannot open account")
		return domain.Account{}, err
	}

	return s.repo.Create(ctx, arg)
}

// GetBalance returns the current balance of the account.
func (s *Service) GetBalance(ctx context.Context, id int64) (domain.Balance, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.Balance{
		AccountID: account.ID,
		Balance:   account.Balance,
	}, nil
}

// Block deactivates the account. A blocked account never becomes active again.
func (s *Service) Block(ctx context.Context, id int64) (domain.Account, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.Block(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	zerolog.Ctx(ctx).Info().Int64("account_id", id).Msg("account blocked")

	return account, nil
}
