package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemActor is recorded in audit fields when no authenticated subject is attached to the request.
const SystemActor = "system"

// NewAuditFields stamps creation and update with the same instant.
func NewAuditFields(actor string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(actor string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actor
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// MoneyScale is the number of decimal places kept for money, matching the NUMERIC(14, 2) columns.
const MoneyScale = 2

// ValidateAmount rejects negative amounts and amounts finer than a centavo.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must be >= 0", apperrors.ErrValidation, field)
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", apperrors.ErrValidation, field, MoneyScale)
	}
	return nil
}
