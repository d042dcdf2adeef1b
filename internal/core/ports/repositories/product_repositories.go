package repositories

import (
	"context"
	"time"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// ProductReader defines read operations for canteen products
type ProductReader interface {
	// FindProductByID retrieves a product, archived or not.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves several products keyed by ID. Missing IDs are simply absent.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProducts lists products ordered by name.
	ListProducts(ctx context.Context, includeArchived bool) ([]domain.Product, error)
}

// ProductWriter defines write operations for canteen products
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct persists every field except Stock.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// AdjustStock adds delta to the stored stock and returns the new level.
	// It fails with apperrors.ErrConflict when the result would be negative.
	AdjustStock(ctx context.Context, productID string, delta int, userID string, now time.Time) (int, error)
}

// ProductRepositoryFacade combines all product repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
