package models

import "github.com/shopspring/decimal"

// Product is a row of the products table.
type Product struct {
	ProductID  string          `db:"product_id"`
	Name       string          `db:"name"`
	Category   string          `db:"category"`
	CostPrice  decimal.Decimal `db:"cost_price"`
	SellPrice  decimal.Decimal `db:"sell_price"`
	Stock      int             `db:"stock"`
	MinStock   int             `db:"min_stock"`
	IsArchived bool            `db:"is_archived"`
	AuditFields
}
