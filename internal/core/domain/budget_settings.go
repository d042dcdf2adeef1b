package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetSettings is the single-row aggregate holding the fixed rent baseline.
type BudgetSettings struct {
	FixedCostRent decimal.Decimal `json:"fixedCostRent"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}
