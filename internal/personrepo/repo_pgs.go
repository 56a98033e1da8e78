// Package personrepo manages repository layer of persons.
package personrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates person repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns person RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO person (
    name,
    document,
    birth_date
) VALUES (
    $1, $2, $3
) RETURNING person_id, name, document, birth_date
`

// Create creates the person and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreatePersonParams) (domain.Person, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Name,
		arg.Document,
		arg.BirthDate,
	)

	var p domain.Person

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Document,
		&p.BirthDate,
	)

	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "person_document_key" {
				return domain.Person{}, domain.ErrDocumentAlreadyExists
			}
		}

		return domain.Person{}, errorspkg.ErrStoreUnavailable
	}

	return p, nil
}

const getQuery = `
SELECT
	person_id,
	name,
	document,
	birth_date
FROM person
WHERE person_id = $1
`

// Get returns the person with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Person, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var p domain.Person

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Document,
		&p.BirthDate,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Person{}, domain.ErrPersonNotFound
		}

		l.Error().Err(err).Send()

		return domain.Person{}, errorspkg.ErrStoreUnavailable
	}

	return p, nil
}
