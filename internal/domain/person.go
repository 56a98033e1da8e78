package domain

import (
	"fmt"
	"time"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

var (
	// ErrPersonNotFound indicates that the person is not found.
	ErrPersonNotFound = fmt.Errorf("person %w", errorspkg.ErrNotFound)
	// ErrDocumentAlreadyExists indicates that a person with the given document already exists.
	ErrDocumentAlreadyExists = fmt.Errorf("person document %w", errorspkg.ErrConflict)
)

// Person holds the identity data of an account owner.
type Person struct {
	ID        int64     `json:"person_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	BirthDate time.Time `json:"birth_date"`
}

// CreatePersonParams is the input data to create a person.
type CreatePersonParams struct {
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	BirthDate time.Time `json:"birth_date"`
}
