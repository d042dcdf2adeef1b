package repositories

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// SaleReader defines read operations for canteen sales
type SaleReader interface {
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales lists sales newest first.
	ListSales(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)

	// HasPendingSaleForProduct reports whether any unsettled sale carries the product.
	HasPendingSaleForProduct(ctx context.Context, productID string) (bool, error)
}

// SaleWriter defines write operations for canteen sales
type SaleWriter interface {
	SaveSale(ctx context.Context, sale domain.Sale) error

	// UpdateSaleSettlement persists status, payment method and settlement time. Items are immutable.
	UpdateSaleSettlement(ctx context.Context, sale domain.Sale) error

	DeleteSale(ctx context.Context, saleID string) error
}

// SaleRepositoryFacade combines all sale repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
