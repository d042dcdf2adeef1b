package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// CreateProjectionRequest defines a planned budget line.
type CreateProjectionRequest struct {
	Label           string          `json:"label" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryMapping *string         `json:"categoryMapping,omitempty" binding:"omitempty,oneof=INSCRICAO CANTINA ALUGUEL_CHACARA OUTROS"`
}

// UpdateProjectionRequest carries the planned fields to change.
type UpdateProjectionRequest struct {
	Label           *string          `json:"label,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	CategoryMapping *string          `json:"categoryMapping,omitempty" binding:"omitempty,oneof=INSCRICAO CANTINA ALUGUEL_CHACARA OUTROS"`
}

// ExecuteProjectionRequest is the reviewed real expense for a planned line.
// Category falls back to the projection's mapping, then to OUTROS.
type ExecuteProjectionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          *time.Time      `json:"date,omitempty"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	Category      *string         `json:"category,omitempty" binding:"omitempty,oneof=INSCRICAO CANTINA ALUGUEL_CHACARA OUTROS"`
}

// UpdateBudgetSettingsRequest sets the rent baseline directly.
type UpdateBudgetSettingsRequest struct {
	FixedCostRent decimal.Decimal `json:"fixedCostRent"`
}

// ProjectionResponse defines the data returned for a projection.
type ProjectionResponse struct {
	ProjectionID          string           `json:"projectionID"`
	Label                 string           `json:"label"`
	Amount                decimal.Decimal  `json:"amount"`
	CategoryMapping       *string          `json:"categoryMapping,omitempty"`
	IsExecuted            bool             `json:"isExecuted"`
	ExecutedTransactionID *string          `json:"executedTransactionID,omitempty"`
	PreviousRentValue     *decimal.Decimal `json:"previousRentValue,omitempty"`
	ExecutedAt            *time.Time       `json:"executedAt,omitempty"`
	Source                string           `json:"source"`
}

// UndoExecutionResponse tells whether the row survived the undo.
type UndoExecutionResponse struct {
	Deleted    bool                `json:"deleted"`
	Projection *ProjectionResponse `json:"projection,omitempty"`
}

// BudgetSettingsResponse defines the data returned for the budget settings row.
type BudgetSettingsResponse struct {
	FixedCostRent decimal.Decimal `json:"fixedCostRent"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToProjectionResponse converts a domain.ProjectionItem to its DTO.
func ToProjectionResponse(p *domain.ProjectionItem) ProjectionResponse {
	resp := ProjectionResponse{
		ProjectionID:          p.ProjectionID,
		Label:                 p.Label,
		Amount:                p.Amount,
		IsExecuted:            p.IsExecuted,
		ExecutedTransactionID: p.ExecutedTransactionID,
		PreviousRentValue:     p.PreviousRentValue,
		ExecutedAt:            p.ExecutedAt,
		Source:                string(p.Source),
	}
	if p.CategoryMapping != nil {
		c := string(*p.CategoryMapping)
		resp.CategoryMapping = &c
	}
	return resp
}

// ToProjectionResponses converts a slice of domain.ProjectionItem.
func ToProjectionResponses(items []domain.ProjectionItem) []ProjectionResponse {
	responses := make([]ProjectionResponse, len(items))
	for i := range items {
		responses[i] = ToProjectionResponse(&items[i])
	}
	return responses
}

// ToBudgetSettingsResponse converts domain.BudgetSettings.
func ToBudgetSettingsResponse(b domain.BudgetSettings) BudgetSettingsResponse {
	return BudgetSettingsResponse(b)
}
