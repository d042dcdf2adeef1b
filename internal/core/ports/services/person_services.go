package services

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// PersonReaderSvc defines read operations for camp attendees
type PersonReaderSvc interface {
	GetPerson(ctx context.Context, personID string) (*domain.Person, error)
	ListPeople(ctx context.Context) ([]domain.Person, error)
}

// PersonWriterSvc defines write operations for camp attendees
type PersonWriterSvc interface {
	CreatePerson(ctx context.Context, req dto.CreatePersonRequest, userID string) (*domain.Person, error)
	UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest, userID string) (*domain.Person, error)

	// DeletePerson is refused while the person has pending canteen debt.
	DeletePerson(ctx context.Context, personID string, userID string) error

	// RegisterPayment adds a registration payment and refreshes the payment status.
	RegisterPayment(ctx context.Context, personID string, req dto.RegisterPaymentRequest, userID string) (*domain.Person, error)
}

// PersonSvcFacade combines all person service interfaces
type PersonSvcFacade interface {
	PersonReaderSvc
	PersonWriterSvc
}
