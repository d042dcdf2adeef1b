package repositories

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// PersonReader defines read operations for camp attendees
type PersonReader interface {
	FindPersonByID(ctx context.Context, personID string) (*domain.Person, error)
	ListPeople(ctx context.Context) ([]domain.Person, error)
}

// PersonWriter defines write operations for camp attendees
type PersonWriter interface {
	SavePerson(ctx context.Context, person domain.Person) error
	UpdatePerson(ctx context.Context, person domain.Person) error
	DeletePerson(ctx context.Context, personID string) error
}

// PersonRepositoryFacade combines all person repository interfaces
type PersonRepositoryFacade interface {
	PersonReader
	PersonWriter
}
