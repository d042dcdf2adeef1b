package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// CreatePersonRequest registers a camp attendee.
type CreatePersonRequest struct {
	Name       string           `json:"name" binding:"required"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	AmountPaid *decimal.Decimal `json:"amountPaid,omitempty"`
}

// UpdatePersonRequest carries the attendee fields to change.
// AmountPaid only moves through RegisterPaymentRequest.
type UpdatePersonRequest struct {
	Name       *string          `json:"name,omitempty"`
	TotalPrice *decimal.Decimal `json:"totalPrice,omitempty"`
}

// RegisterPaymentRequest records a registration payment.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date,omitempty"`
}

// PersonResponse defines the data returned for an attendee.
type PersonResponse struct {
	PersonID        string          `json:"personID"`
	Name            string          `json:"name"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	PaymentStatus   string          `json:"paymentStatus"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate,omitempty"`
}

// ToPersonResponse converts a domain.Person to its DTO.
func ToPersonResponse(p *domain.Person) PersonResponse {
	return PersonResponse{
		PersonID:        p.PersonID,
		Name:            p.Name,
		TotalPrice:      p.TotalPrice,
		AmountPaid:      p.AmountPaid,
		Outstanding:     p.Outstanding(),
		PaymentStatus:   string(p.PaymentStatus),
		LastPaymentDate: p.LastPaymentDate,
	}
}

// ToPersonResponses converts a slice of domain.Person.
func ToPersonResponses(people []domain.Person) []PersonResponse {
	responses := make([]PersonResponse, len(people))
	for i := range people {
		responses[i] = ToPersonResponse(&people[i])
	}
	return responses
}
