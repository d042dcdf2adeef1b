package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
)

// TransactionType is the direction of a cash movement.
type TransactionType string

const (
	Entrada TransactionType = "ENTRADA"
	Saida   TransactionType = "SAIDA"
)

// TransactionCategory groups cash movements for reporting.
type TransactionCategory string

const (
	CategoryInscricao      TransactionCategory = "INSCRICAO"
	CategoryCantina        TransactionCategory = "CANTINA"
	CategoryAluguelChacara TransactionCategory = "ALUGUEL_CHACARA"
	CategoryOutros         TransactionCategory = "OUTROS"
)

// IsValid reports whether the category is known.
func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryInscricao, CategoryCantina, CategoryAluguelChacara, CategoryOutros:
		return true
	}
	return false
}

// VirtualIDPrefix marks timeline rows synthesized from person payments.
const VirtualIDPrefix = "auto-"

// Transaction is one cash movement in the ledger.
type Transaction struct {
	TransactionID string              `json:"transactionID"`
	Description   string              `json:"description" validate:"required"`
	Amount        decimal.Decimal     `json:"amount"`
	Type          TransactionType     `json:"type" validate:"required,oneof=ENTRADA SAIDA"`
	Category      TransactionCategory `json:"category" validate:"required,oneof=INSCRICAO CANTINA ALUGUEL_CHACARA OUTROS"`
	Date          time.Time           `json:"date" validate:"required"`
	PaymentMethod *string             `json:"paymentMethod,omitempty"`
	ReferenceID   *string             `json:"referenceID,omitempty"`
	PersonID      *string             `json:"personID,omitempty"`
	PersonName    *string             `json:"personName,omitempty"`
	IsSettled     bool                `json:"isSettled"`
	Items         []SaleItem          `json:"items,omitempty"`
	IsVirtual     bool                `json:"isVirtual"`
	AuditFields
}

// Validate checks the structural rules of a ledger row. Nothing else is enforced on manual entries.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return ValidateAmount("amount", t.Amount)
}

// SignedAmount is positive for ENTRADA and negative for SAIDA.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Saida {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsVirtualID reports whether id belongs to a synthesized timeline row.
func IsVirtualID(id string) bool {
	return strings.HasPrefix(id, VirtualIDPrefix)
}

// TransactionFilter narrows ledger listings. Zero values mean no filter.
type TransactionFilter struct {
	Type     *TransactionType
	Category *TransactionCategory
	From     *time.Time
	To       *time.Time
}

// Matches reports whether t passes the filter. To is exclusive.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Date.Before(*f.To) {
		return false
	}
	return true
}
