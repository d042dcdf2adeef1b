package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Projection is a row of the projections table.
type Projection struct {
	ProjectionID          string           `db:"projection_id"`
	Label                 string           `db:"label"`
	Amount                decimal.Decimal  `db:"amount"`
	CategoryMapping       *string          `db:"category_mapping"`
	IsExecuted            bool             `db:"is_executed"`
	ExecutedTransactionID *string          `db:"executed_transaction_id"`
	PreviousRentValue     *decimal.Decimal `db:"previous_rent_value"`
	ExecutedAt            *time.Time       `db:"executed_at"`
	Source                string           `db:"source"`
	AuditFields
}
