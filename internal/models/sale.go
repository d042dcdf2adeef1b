package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table. Its lines live in sale_items.
type Sale struct {
	SaleID        string          `db:"sale_id"`
	Total         decimal.Decimal `db:"total"`
	TotalCost     decimal.Decimal `db:"total_cost"`
	SaleDate      time.Time       `db:"sale_date"`
	PaymentMethod string          `db:"payment_method"`
	PersonID      *string         `db:"person_id"`
	PersonName    *string         `db:"person_name"`
	Status        string          `db:"status"`
	SettledAt     *time.Time      `db:"settled_at"`
	AuditFields
	Items []SaleItem `db:"-"`
}

// SaleItem is one priced line, stored in sale_items and embedded as JSON in transactions.items.
type SaleItem struct {
	ProductID   string          `db:"product_id" json:"productID"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	UnitCost    decimal.Decimal `db:"unit_cost" json:"unitCost"`
}
