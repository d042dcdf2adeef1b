package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// inventoryService manages the canteen catalogue and its stock levels.
type inventoryService struct {
	BaseService
	store portsrepo.Store
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(store portsrepo.Store, opts ...ServiceOption) portssvc.InventorySvcFacade {
	return &inventoryService{
		BaseService: newBaseService(opts...),
		store:       store,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		CostPrice:   req.CostPrice,
		SellPrice:   req.SellPrice,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Repositories().ProductRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("product_name", product.Name))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.Int("stock", product.Stock))
	return &product, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.store.Repositories().ProductRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, err)
	}
	return product, nil
}

func (s *inventoryService) ListProducts(ctx context.Context, includeArchived bool) ([]domain.Product, error) {
	products, err := s.store.Repositories().ProductRepo.ListProducts(ctx, includeArchived)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *inventoryService) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx, false)
	if err != nil {
		return nil, err
	}
	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	unlock, err := s.Lock(ctx, productLockKeys(productID)...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var updated domain.Product
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		product, err := repos.ProductRepo.FindProductByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, err)
		}

		if req.Name != nil {
			product.Name = strings.TrimSpace(*req.Name)
		}
		if req.Category != nil {
			product.Category = strings.TrimSpace(*req.Category)
		}
		if req.CostPrice != nil {
			product.CostPrice = *req.CostPrice
		}
		if req.SellPrice != nil {
			product.SellPrice = *req.SellPrice
		}
		if req.MinStock != nil {
			product.MinStock = *req.MinStock
		}
		if err := product.Validate(); err != nil {
			return err
		}
		product.Touch(userID, s.Now())

		if err := repos.ProductRepo.UpdateProduct(ctx, *product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		updated = *product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Product updated", slog.String("product_id", productID))
	return &updated, nil
}

func (s *inventoryService) ArchiveProduct(ctx context.Context, productID string, userID string) error {
	unlock, err := s.Lock(ctx, productLockKeys(productID)...)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		product, err := repos.ProductRepo.FindProductByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, err)
		}
		if product.IsArchived {
			return nil
		}

		pending, err := repos.SaleRepo.HasPendingSaleForProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to check pending sales: %w", err)
		}
		if pending {
			return fmt.Errorf("%w: product %s is referenced by pending debt", apperrors.ErrConflict, productID)
		}

		product.IsArchived = true
		product.Touch(userID, s.Now())
		return repos.ProductRepo.UpdateProduct(ctx, *product)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to archive product", slog.String("product_id", productID))
		return err
	}

	s.LogInfo(ctx, "Product archived", slog.String("product_id", productID))
	return nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID string, req dto.AdjustStockRequest, userID string) (*domain.Product, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: stock adjustment must not be zero", apperrors.ErrValidation)
	}

	unlock, err := s.Lock(ctx, productLockKeys(productID)...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var adjusted domain.Product
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		product, err := repos.ProductRepo.FindProductByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, err)
		}
		now := s.Now()
		newStock, err := repos.ProductRepo.AdjustStock(ctx, productID, req.Delta, userID, now)
		if err != nil {
			return err
		}
		product.Stock = newStock
		product.Touch(userID, now)
		adjusted = *product
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to adjust stock", slog.String("product_id", productID), slog.Int("delta", req.Delta))
		return nil, err
	}

	s.LogInfo(ctx, "Stock adjusted",
		slog.String("product_id", productID),
		slog.Int("delta", req.Delta),
		slog.Int("stock", adjusted.Stock),
		slog.String("reason", req.Reason))
	return &adjusted, nil
}

func (s *inventoryService) ReplenishStock(ctx context.Context, productID string, req dto.ReplenishStockRequest, userID string) (*domain.StockReplenishment, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", apperrors.ErrValidation)
	}
	if req.UnitCost != nil {
		if err := domain.ValidateAmount("unit cost", *req.UnitCost); err != nil {
			return nil, err
		}
	}
	var method *string
	if req.PaymentMethod != nil {
		m, err := parseSettlementMethod(*req.PaymentMethod)
		if err != nil {
			return nil, err
		}
		method = ptr(string(m))
	}

	unlock, err := s.Lock(ctx, productLockKeys(productID)...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	var result domain.StockReplenishment
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		product, err := repos.ProductRepo.FindProductByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, err)
		}
		if product.IsArchived {
			return fmt.Errorf("%w: product %s is archived", apperrors.ErrConflict, productID)
		}

		if req.UnitCost != nil && !req.UnitCost.Equal(product.CostPrice) {
			product.CostPrice = *req.UnitCost
			product.Touch(userID, now)
			if err := repos.ProductRepo.UpdateProduct(ctx, *product); err != nil {
				return fmt.Errorf("failed to update product cost: %w", err)
			}
		}

		newStock, err := repos.ProductRepo.AdjustStock(ctx, productID, req.Quantity, userID, now)
		if err != nil {
			return err
		}
		product.Stock = newStock

		item := domain.SaleItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.SellPrice,
			UnitCost:    product.CostPrice,
		}
		projectionID := uuid.NewString()
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			Description:   fmt.Sprintf("Reposição de estoque - %s", product.Name),
			Amount:        item.CostSubtotal(),
			Type:          domain.Saida,
			Category:      domain.CategoryCantina,
			Date:          date,
			PaymentMethod: method,
			ReferenceID:   ptr(projectionID),
			IsSettled:     true,
			Items:         []domain.SaleItem{item},
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if err := repos.TransactionRepo.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save replenishment transaction: %w", err)
		}

		projection := domain.ProjectionItem{
			ProjectionID:          projectionID,
			Label:                 fmt.Sprintf("Reposição - %s (%d un.)", product.Name, req.Quantity),
			Amount:                txn.Amount,
			CategoryMapping:       ptr(domain.CategoryCantina),
			IsExecuted:            true,
			ExecutedTransactionID: ptr(txn.TransactionID),
			ExecutedAt:            ptr(now),
			Source:                domain.SourceMovement,
			AuditFields:           domain.NewAuditFields(userID, now),
		}
		if err := repos.ProjectionRepo.SaveProjection(ctx, projection); err != nil {
			return fmt.Errorf("failed to save replenishment projection: %w", err)
		}

		result = domain.StockReplenishment{Product: *product, Transaction: txn, Projection: projection}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to replenish stock", slog.String("product_id", productID))
		return nil, err
	}

	s.LogInfo(ctx, "Stock replenished",
		slog.String("product_id", productID),
		slog.Int("quantity", req.Quantity),
		slog.String("amount", result.Transaction.Amount.String()))
	return &result, nil
}

// stockValueItems snapshots every active product with units on hand.
func stockValueItems(products []domain.Product) ([]domain.SaleItem, decimal.Decimal) {
	items := make([]domain.SaleItem, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		if p.IsArchived || p.Stock <= 0 {
			continue
		}
		item := domain.SaleItem{
			ProductID:   p.ProductID,
			ProductName: p.Name,
			Quantity:    p.Stock,
			UnitPrice:   p.SellPrice,
			UnitCost:    p.CostPrice,
		}
		items = append(items, item)
		total = total.Add(item.CostSubtotal())
	}
	return items, total
}
