package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// CreateProductRequest defines the data needed to register a canteen product.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	Category  string          `json:"category"`
	CostPrice decimal.Decimal `json:"costPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Stock     int             `json:"stock" binding:"gte=0"`
	MinStock  int             `json:"minStock" binding:"gte=0"`
}

// UpdateProductRequest carries the fields to change. Stock is only moved by sales,
// replenishments and adjustments.
type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	Category  *string          `json:"category,omitempty"`
	CostPrice *decimal.Decimal `json:"costPrice,omitempty"`
	SellPrice *decimal.Decimal `json:"sellPrice,omitempty"`
	MinStock  *int             `json:"minStock,omitempty" binding:"omitempty,gte=0"`
}

// AdjustStockRequest is an additive stock correction (breakage, recount).
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// ReplenishStockRequest records units bought for the canteen.
type ReplenishStockRequest struct {
	Quantity      int              `json:"quantity" binding:"required,gt=0"`
	UnitCost      *decimal.Decimal `json:"unitCost,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID  string          `json:"productID"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	CostPrice  decimal.Decimal `json:"costPrice"`
	SellPrice  decimal.Decimal `json:"sellPrice"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"minStock"`
	LowStock   bool            `json:"lowStock"`
	IsArchived bool            `json:"isArchived"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ReplenishmentResponse is returned after a stock purchase.
type ReplenishmentResponse struct {
	Product     ProductResponse     `json:"product"`
	Transaction TransactionResponse `json:"transaction"`
	Projection  ProjectionResponse  `json:"projection"`
}

// ToProductResponse converts a domain.Product to its DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:  p.ProductID,
		Name:       p.Name,
		Category:   p.Category,
		CostPrice:  p.CostPrice,
		SellPrice:  p.SellPrice,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		LowStock:   p.IsLowStock(),
		IsArchived: p.IsArchived,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.LastUpdatedAt,
	}
}

// ToProductResponses converts a slice of domain.Product.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToReplenishmentResponse converts a domain.StockReplenishment.
func ToReplenishmentResponse(r *domain.StockReplenishment) ReplenishmentResponse {
	return ReplenishmentResponse{
		Product:     ToProductResponse(&r.Product),
		Transaction: ToTransactionResponse(&r.Transaction),
		Projection:  ToProjectionResponse(&r.Projection),
	}
}
