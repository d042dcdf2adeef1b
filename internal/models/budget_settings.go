package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetSettings is the single row of the budget_settings table (id = 1).
type BudgetSettings struct {
	FixedCostRent decimal.Decimal `db:"fixed_cost_rent"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}
