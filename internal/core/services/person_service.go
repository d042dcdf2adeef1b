package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

type personService struct {
	BaseService
	store portsrepo.Store
}

// NewPersonService creates a new person service.
func NewPersonService(store portsrepo.Store, opts ...ServiceOption) portssvc.PersonSvcFacade {
	return &personService{
		BaseService: newBaseService(opts...),
		store:       store,
	}
}

var _ portssvc.PersonSvcFacade = (*personService)(nil)

func (s *personService) CreatePerson(ctx context.Context, req dto.CreatePersonRequest, userID string) (*domain.Person, error) {
	now := s.Now()
	person := domain.Person{
		PersonID:    uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		TotalPrice:  req.TotalPrice,
		AmountPaid:  decimal.Zero,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if req.AmountPaid != nil && !req.AmountPaid.IsZero() {
		person.AmountPaid = *req.AmountPaid
		person.LastPaymentDate = ptr(now)
	}
	if err := person.Validate(); err != nil {
		return nil, err
	}
	person.PaymentStatus = person.DerivePaymentStatus()

	if err := s.store.Repositories().PersonRepo.SavePerson(ctx, person); err != nil {
		s.LogError(ctx, err, "Failed to save person", slog.String("name", person.Name))
		return nil, fmt.Errorf("failed to save person: %w", err)
	}

	s.LogInfo(ctx, "Person created", slog.String("person_id", person.PersonID), slog.String("status", string(person.PaymentStatus)))
	return &person, nil
}

func (s *personService) GetPerson(ctx context.Context, personID string) (*domain.Person, error) {
	person, err := s.store.Repositories().PersonRepo.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("person %s: %w", personID, err)
	}
	return person, nil
}

func (s *personService) ListPeople(ctx context.Context) ([]domain.Person, error) {
	people, err := s.store.Repositories().PersonRepo.ListPeople(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list people")
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

func (s *personService) UpdatePerson(ctx context.Context, personID string, req dto.UpdatePersonRequest, userID string) (*domain.Person, error) {
	unlock, err := s.Lock(ctx, personLockKey(personID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var updated domain.Person
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		person, err := repos.PersonRepo.FindPersonByID(ctx, personID)
		if err != nil {
			return fmt.Errorf("person %s: %w", personID, err)
		}
		if req.Name != nil {
			person.Name = strings.TrimSpace(*req.Name)
		}
		if req.TotalPrice != nil {
			person.TotalPrice = *req.TotalPrice
		}
		if err := person.Validate(); err != nil {
			return err
		}
		person.PaymentStatus = person.DerivePaymentStatus()
		person.Touch(userID, s.Now())

		if err := repos.PersonRepo.UpdatePerson(ctx, *person); err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}
		updated = *person
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Person updated", slog.String("person_id", personID))
	return &updated, nil
}

func (s *personService) DeletePerson(ctx context.Context, personID string, userID string) error {
	unlock, err := s.Lock(ctx, personLockKey(personID))
	if err != nil {
		return err
	}
	defer unlock()

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if _, err := repos.PersonRepo.FindPersonByID(ctx, personID); err != nil {
			return fmt.Errorf("person %s: %w", personID, err)
		}
		pending := domain.SalePending
		sales, err := repos.SaleRepo.ListSales(ctx, domain.SaleFilter{Status: &pending, PersonID: &personID})
		if err != nil {
			return fmt.Errorf("failed to list pending sales: %w", err)
		}
		if len(sales) > 0 {
			return fmt.Errorf("%w: person %s still has %d pending sales", apperrors.ErrConflict, personID, len(sales))
		}
		return repos.PersonRepo.DeletePerson(ctx, personID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete person", slog.String("person_id", personID))
		return err
	}

	s.LogInfo(ctx, "Person deleted", slog.String("person_id", personID), slog.String("user_id", userID))
	return nil
}

func (s *personService) RegisterPayment(ctx context.Context, personID string, req dto.RegisterPaymentRequest, userID string) (*domain.Person, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be > 0", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount("payment amount", req.Amount); err != nil {
		return nil, err
	}

	unlock, err := s.Lock(ctx, personLockKey(personID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	paidAt := now
	if req.Date != nil {
		paidAt = *req.Date
	}

	var updated domain.Person
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		person, err := repos.PersonRepo.FindPersonByID(ctx, personID)
		if err != nil {
			return fmt.Errorf("person %s: %w", personID, err)
		}
		person.AmountPaid = person.AmountPaid.Add(req.Amount)
		person.LastPaymentDate = &paidAt
		person.PaymentStatus = person.DerivePaymentStatus()
		person.Touch(userID, now)

		if err := repos.PersonRepo.UpdatePerson(ctx, *person); err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}
		updated = *person
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register payment", slog.String("person_id", personID))
		return nil, err
	}

	s.LogInfo(ctx, "Registration payment recorded",
		slog.String("person_id", personID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(updated.PaymentStatus)))
	return &updated, nil
}
