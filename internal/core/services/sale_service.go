package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/accounting"
)

// saleService rings up canteen sales and settles the running tabs.
type saleService struct {
	BaseService
	store portsrepo.Store
}

// NewSaleService creates a new sale service.
func NewSaleService(store portsrepo.Store, opts ...ServiceOption) portssvc.SaleSvcFacade {
	return &saleService{
		BaseService: newBaseService(opts...),
		store:       store,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// validateSaleRequest checks everything that does not need storage.
func validateSaleRequest(req dto.RegisterSaleRequest) (domain.PaymentMethod, error) {
	if len(req.Items) == 0 {
		return "", fmt.Errorf("%w: a sale needs at least one item", apperrors.ErrValidation)
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return "", fmt.Errorf("%w: item %d has no product", apperrors.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return "", fmt.Errorf("%w: item %d quantity must be > 0", apperrors.ErrValidation, i)
		}
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.IsValid() {
		return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	if method == domain.PaymentOnAccount && (req.PersonID == nil || strings.TrimSpace(*req.PersonID) == "") {
		return "", fmt.Errorf("%w: a sale on the tab needs a person", apperrors.ErrValidation)
	}
	return method, nil
}

// quantitiesByProduct sums the requested units per product, in product ID order.
func quantitiesByProduct(items []dto.SaleItemRequest) ([]string, map[string]int, error) {
	qty := make(map[string]int, len(items))
	for i, item := range items {
		if qty[item.ProductID] > math.MaxInt-item.Quantity {
			return nil, nil, fmt.Errorf("%w: item %d quantity is too large", apperrors.ErrValidation, i)
		}
		qty[item.ProductID] += item.Quantity
	}
	return sortedKeys(qty), qty, nil
}

func (s *saleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest, userID string) (*domain.Sale, error) {
	method, err := validateSaleRequest(req)
	if err != nil {
		return nil, err
	}
	productIDs, qtyByProduct, err := quantitiesByProduct(req.Items)
	if err != nil {
		return nil, err
	}

	lockKeys := productLockKeys(productIDs...)
	if req.PersonID != nil && *req.PersonID != "" {
		lockKeys = append(lockKeys, personLockKey(*req.PersonID))
	}
	unlock, err := s.Lock(ctx, lockKeys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var sale domain.Sale
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		products, err := repos.ProductRepo.FindProductsByIDs(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		for _, id := range productIDs {
			product, ok := products[id]
			if !ok {
				return fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
			}
			if product.IsArchived {
				return fmt.Errorf("%w: product %s is archived", apperrors.ErrConflict, product.Name)
			}
			if qtyByProduct[id] > product.Stock {
				return fmt.Errorf("%w: insufficient stock for %s: requested %d, available %d",
					apperrors.ErrConflict, product.Name, qtyByProduct[id], product.Stock)
			}
		}

		var person *domain.Person
		if req.PersonID != nil && *req.PersonID != "" {
			person, err = repos.PersonRepo.FindPersonByID(ctx, *req.PersonID)
			if err != nil {
				return fmt.Errorf("person %s: %w", *req.PersonID, err)
			}
		}

		items := make([]domain.SaleItem, len(req.Items))
		for i, line := range req.Items {
			product := products[line.ProductID]
			items[i] = domain.SaleItem{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.SellPrice,
				UnitCost:    product.CostPrice,
			}
		}
		total, totalCost := domain.SaleTotals(items)

		for _, id := range productIDs {
			if _, err := repos.ProductRepo.AdjustStock(ctx, id, -qtyByProduct[id], userID, now); err != nil {
				return err
			}
		}

		sale = domain.Sale{
			SaleID:        uuid.NewString(),
			Items:         items,
			Total:         total,
			TotalCost:     totalCost,
			Date:          now,
			PaymentMethod: method,
			Status:        domain.SalePaid,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if person != nil {
			sale.PersonID = ptr(person.PersonID)
			sale.PersonName = ptr(person.Name)
		}
		if method == domain.PaymentOnAccount {
			sale.Status = domain.SalePending
		} else {
			sale.SettledAt = ptr(now)
		}
		if err := repos.SaleRepo.SaveSale(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}

		if sale.Status == domain.SalePaid {
			txn := canteenEntry(sale, "Venda cantina", sale.SaleID, now, userID)
			if err := repos.TransactionRepo.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save sale transaction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register sale", slog.String("payment_method", req.PaymentMethod))
		return nil, err
	}

	s.LogInfo(ctx, "Sale registered",
		slog.String("sale_id", sale.SaleID),
		slog.String("status", string(sale.Status)),
		slog.String("total", sale.Total.String()))
	return &sale, nil
}

// canteenEntry builds the ENTRADA/CANTINA row for money received from a sale.
func canteenEntry(sale domain.Sale, description, referenceID string, date time.Time, userID string) domain.Transaction {
	items := make([]domain.SaleItem, len(sale.Items))
	copy(items, sale.Items)
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   description,
		Amount:        sale.Total,
		Type:          domain.Entrada,
		Category:      domain.CategoryCantina,
		Date:          date,
		PaymentMethod: ptr(string(sale.PaymentMethod)),
		ReferenceID:   ptr(referenceID),
		PersonID:      sale.PersonID,
		PersonName:    sale.PersonName,
		IsSettled:     true,
		Items:         items,
		AuditFields:   domain.NewAuditFields(userID, date),
	}
}

func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.store.Repositories().SaleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", saleID, err)
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	filter := domain.SaleFilter{PersonID: params.PersonID, From: params.From, To: params.To}
	if params.Status != nil && *params.Status != "" {
		status := domain.SaleStatus(strings.ToUpper(*params.Status))
		if status != domain.SalePaid && status != domain.SalePending {
			return nil, fmt.Errorf("%w: unknown sale status %q", apperrors.ErrValidation, *params.Status)
		}
		filter.Status = &status
	}

	sales, err := s.store.Repositories().SaleRepo.ListSales(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (s *saleService) ListCustomerDebts(ctx context.Context) ([]domain.CustomerDebt, error) {
	pending := domain.SalePending
	sales, err := s.store.Repositories().SaleRepo.ListSales(ctx, domain.SaleFilter{Status: &pending})
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending sales")
		return nil, fmt.Errorf("failed to list pending sales: %w", err)
	}
	return accounting.CustomerDebts(sales), nil
}

func (s *saleService) SettleSale(ctx context.Context, saleID string, req dto.SettleRequest, userID string) (*domain.Transaction, error) {
	method, err := parseSettlementMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	current, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	var keys []string
	if current.PersonID != nil {
		keys = append(keys, personLockKey(*current.PersonID))
	}
	unlock, err := s.Lock(ctx, keys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var txn domain.Transaction
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		sale, err := repos.SaleRepo.FindSaleByID(ctx, saleID)
		if err != nil {
			return fmt.Errorf("sale %s: %w", saleID, err)
		}
		if !sale.IsPending() {
			return fmt.Errorf("%w: sale %s is already paid", apperrors.ErrConflict, saleID)
		}

		sale.Status = domain.SalePaid
		sale.PaymentMethod = method
		sale.SettledAt = ptr(now)
		sale.Touch(userID, now)
		if err := repos.SaleRepo.UpdateSaleSettlement(ctx, *sale); err != nil {
			return fmt.Errorf("failed to settle sale: %w", err)
		}

		description := "Pagamento fiado"
		if sale.PersonName != nil {
			description = fmt.Sprintf("Pagamento fiado - %s", *sale.PersonName)
		}
		txn = canteenEntry(*sale, description, sale.SaleID, now, userID)
		if err := repos.TransactionRepo.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save settlement transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to settle sale", slog.String("sale_id", saleID))
		return nil, err
	}

	s.LogInfo(ctx, "Sale settled", slog.String("sale_id", saleID), slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *saleService) SettleAllCustomerDebt(ctx context.Context, personID string, req dto.SettleRequest, userID string) (*domain.Transaction, error) {
	method, err := parseSettlementMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	unlock, err := s.Lock(ctx, personLockKey(personID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var txn *domain.Transaction
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		person, err := repos.PersonRepo.FindPersonByID(ctx, personID)
		if err != nil {
			return fmt.Errorf("person %s: %w", personID, err)
		}

		pending := domain.SalePending
		sales, err := repos.SaleRepo.ListSales(ctx, domain.SaleFilter{Status: &pending, PersonID: &personID})
		if err != nil {
			return fmt.Errorf("failed to list pending sales: %w", err)
		}
		if len(sales) == 0 {
			return nil
		}

		total := decimal.Zero
		items := make([]domain.SaleItem, 0)
		for _, sale := range sales {
			sale.Status = domain.SalePaid
			sale.PaymentMethod = method
			sale.SettledAt = ptr(now)
			sale.Touch(userID, now)
			if err := repos.SaleRepo.UpdateSaleSettlement(ctx, sale); err != nil {
				return fmt.Errorf("failed to settle sale %s: %w", sale.SaleID, err)
			}
			total = total.Add(sale.Total)
			items = append(items, sale.Items...)
		}

		aggregate := domain.Sale{
			Items:         items,
			Total:         total,
			PaymentMethod: method,
			PersonID:      ptr(person.PersonID),
			PersonName:    ptr(person.Name),
		}
		description := fmt.Sprintf("Quitação de fiado - %s (%d vendas)", person.Name, len(sales))
		entry := canteenEntry(aggregate, description, person.PersonID, now, userID)
		if err := repos.TransactionRepo.SaveTransaction(ctx, entry); err != nil {
			return fmt.Errorf("failed to save settlement transaction: %w", err)
		}
		txn = &entry
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to settle customer debt", slog.String("person_id", personID))
		return nil, err
	}

	if txn == nil {
		s.LogInfo(ctx, "No pending debt to settle", slog.String("person_id", personID))
		return nil, nil
	}
	s.LogInfo(ctx, "Customer debt settled", slog.String("person_id", personID), slog.String("amount", txn.Amount.String()))
	return txn, nil
}

func (s *saleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	current, err := s.GetSale(ctx, saleID)
	if err != nil {
		return err
	}
	productIDs := make([]string, 0, len(current.Items))
	for _, item := range current.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	keys := productLockKeys(productIDs...)
	if current.PersonID != nil {
		keys = append(keys, personLockKey(*current.PersonID))
	}
	unlock, err := s.Lock(ctx, keys...)
	if err != nil {
		return err
	}
	defer unlock()

	now := s.Now()
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		sale, err := repos.SaleRepo.FindSaleByID(ctx, saleID)
		if err != nil {
			return fmt.Errorf("sale %s: %w", saleID, err)
		}

		restock := make(map[string]int, len(sale.Items))
		for _, item := range sale.Items {
			restock[item.ProductID] += item.Quantity
		}
		for _, id := range sortedKeys(restock) {
			if _, err := repos.ProductRepo.AdjustStock(ctx, id, restock[id], userID, now); err != nil {
				return fmt.Errorf("failed to restock product %s: %w", id, err)
			}
		}

		return repos.SaleRepo.DeleteSale(ctx, saleID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete sale", slog.String("sale_id", saleID))
		return err
	}

	s.LogInfo(ctx, "Sale deleted", slog.String("sale_id", saleID), slog.String("status", string(current.Status)))
	return nil
}
