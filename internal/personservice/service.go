// Package personservice manages business logic layer of persons.
package personservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Repo provides data access layer interface needed by person service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package personservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreatePersonParams) (domain.Person, error)
	Get(ctx context.Context, id int64) (domain.Person, error)
}

// Service facilitates person service layer logic.
type Service struct {
	repo Repo
}

// New returns person service struct to manage person bussines logic.
func New(pr Repo) *Service {
	return &Service{repo: pr}
}

// Create registers the person. Documents are unique.
func (s *Service) Create(ctx context.Context, arg domain.CreatePersonParams) (domain.Person, error) {
	person, err := s.repo.Create(ctx, arg)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Msg("cannot create person")
		return domain.Person{}, err
	}

	return person, nil
}

// Get returns person for the given person ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Person, error) {
	return s.repo.Get(ctx, id)
}
