package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
)

// ProjectionSource tells where a projection row came from.
type ProjectionSource string

const (
	// SourceBase rows are planned by hand and return to planned on undo.
	SourceBase ProjectionSource = "BASE"
	// SourceStock rows are created already executed by a stock valuation.
	SourceStock ProjectionSource = "STOCK"
	// SourceMovement rows are created already executed by a stock replenishment.
	SourceMovement ProjectionSource = "MOVEMENT"
)

// ProjectionItem is a planned expense line of the camp budget.
//
// A row is either planned (no linkage) or executed with exactly one of
// ExecutedTransactionID or PreviousRentValue set.
type ProjectionItem struct {
	ProjectionID          string               `json:"projectionID"`
	Label                 string               `json:"label"`
	Amount                decimal.Decimal      `json:"amount"`
	CategoryMapping       *TransactionCategory `json:"categoryMapping,omitempty"`
	IsExecuted            bool                 `json:"isExecuted"`
	ExecutedTransactionID *string              `json:"executedTransactionID,omitempty"`
	PreviousRentValue     *decimal.Decimal     `json:"previousRentValue,omitempty"`
	ExecutedAt            *time.Time           `json:"executedAt,omitempty"`
	Source                ProjectionSource     `json:"source"`
	AuditFields
}

// Validate checks the planned fields of a projection.
func (p ProjectionItem) Validate() error {
	if strings.TrimSpace(p.Label) == "" {
		return fmt.Errorf("%w: label is required", apperrors.ErrValidation)
	}
	if err := ValidateAmount("amount", p.Amount); err != nil {
		return err
	}
	if p.CategoryMapping != nil && !p.CategoryMapping.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *p.CategoryMapping)
	}
	return nil
}

// IsRentExecution reports whether the row was executed against the rent baseline.
func (p ProjectionItem) IsRentExecution() bool {
	return p.IsExecuted && p.PreviousRentValue != nil
}

// ResetToPlanned clears every execution link.
func (p *ProjectionItem) ResetToPlanned() {
	p.IsExecuted = false
	p.ExecutedTransactionID = nil
	p.PreviousRentValue = nil
	p.ExecutedAt = nil
}

// ExecutionStrategy is how executing a projection lands in the books.
// It is one of FixedCostUpdate or LedgerTransaction.
type ExecutionStrategy interface {
	isExecutionStrategy()
}

// FixedCostUpdate overwrites the rent baseline and creates no ledger row.
type FixedCostUpdate struct{}

// LedgerTransaction appends a SAIDA row in the given category.
type LedgerTransaction struct {
	Category TransactionCategory
}

func (FixedCostUpdate) isExecutionStrategy()   {}
func (LedgerTransaction) isExecutionStrategy() {}

// StrategyFor picks the execution strategy for a category.
func StrategyFor(category TransactionCategory) ExecutionStrategy {
	if category == CategoryAluguelChacara {
		return FixedCostUpdate{}
	}
	return LedgerTransaction{Category: category}
}
