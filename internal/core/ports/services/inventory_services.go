package services

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// InventoryReaderSvc defines read operations for canteen products
type InventoryReaderSvc interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, includeArchived bool) ([]domain.Product, error)

	// ListLowStock lists active products at or below their reorder level.
	ListLowStock(ctx context.Context) ([]domain.Product, error)
}

// InventoryWriterSvc defines write operations for canteen products
type InventoryWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)

	// ArchiveProduct hides a product from the catalogue. It is refused while pending debt references it.
	ArchiveProduct(ctx context.Context, productID string, userID string) error

	// AdjustStock adds delta (which may be negative) to the stock on hand.
	AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error)

	// ReplenishStock records bought units, the SAIDA row paying for them and an executed MOVEMENT projection.
	ReplenishStock(ctx context.Context, productID string, req dto.ReplenishStockRequest, userID string) (*domain.StockReplenishment, error)
}

// InventorySvcFacade combines all inventory service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
