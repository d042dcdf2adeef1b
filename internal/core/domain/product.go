package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
)

// Product is a canteen item kept in stock.
type Product struct {
	ProductID  string          `json:"productID"`
	Name       string          `json:"name" validate:"required"`
	Category   string          `json:"category"`
	CostPrice  decimal.Decimal `json:"costPrice"`
	SellPrice  decimal.Decimal `json:"sellPrice"`
	Stock      int             `json:"stock" validate:"gte=0"`
	MinStock   int             `json:"minStock" validate:"gte=0"`
	IsArchived bool            `json:"isArchived"`
	AuditFields
}

// Validate checks the structural rules of a product.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := ValidateAmount("cost price", p.CostPrice); err != nil {
		return err
	}
	return ValidateAmount("sell price", p.SellPrice)
}

// StockValue is the cost of the units currently on hand.
func (p Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// IsLowStock reports whether the product reached its reorder level.
func (p Product) IsLowStock() bool {
	return !p.IsArchived && p.Stock <= p.MinStock
}

// StockReplenishment is the outcome of buying stock: the product with its new level,
// the SAIDA row paying for it and the executed MOVEMENT projection linked to that row.
type StockReplenishment struct {
	Product     Product
	Transaction Transaction
	Projection  ProjectionItem
}
