package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
)

// PaymentStatus tracks how much of the registration fee a person has paid.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDENTE"
	PaymentStatusPartial PaymentStatus = "PARCIAL"
	PaymentStatusPaid    PaymentStatus = "PAGO"
)

// Person is a camp attendee. Registration payments are tracked here and surface in the
// ledger timeline as one virtual ENTRADA/INSCRICAO row per person.
type Person struct {
	PersonID        string          `json:"personID"`
	Name            string          `json:"name" validate:"required"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate,omitempty"`
	AuditFields
}

// Validate checks the name and both amounts.
func (p Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := ValidateAmount("total price", p.TotalPrice); err != nil {
		return err
	}
	return ValidateAmount("amount paid", p.AmountPaid)
}

// Outstanding is what the person still owes on registration, never negative.
func (p Person) Outstanding() decimal.Decimal {
	rest := p.TotalPrice.Sub(p.AmountPaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// DerivePaymentStatus computes the status from the amounts.
func (p Person) DerivePaymentStatus() PaymentStatus {
	switch {
	case p.AmountPaid.IsZero() || p.AmountPaid.IsNegative():
		return PaymentStatusPending
	case p.AmountPaid.GreaterThanOrEqual(p.TotalPrice):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}
