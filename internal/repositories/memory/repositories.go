package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

// cloneItems detaches item slices from callers so stored snapshots stay immutable.
func cloneItems(items []domain.SaleItem) []domain.SaleItem {
	if items == nil {
		return nil
	}
	return slices.Clone(items)
}

type productRepository struct{ repoBase }

var _ portsrepo.ProductRepositoryFacade = (*productRepository)(nil)

func (r *productRepository) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	defer r.rlock()()
	p, ok := r.store.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (r *productRepository) FindProductsByIDs(_ context.Context, productIDs []string) (map[string]domain.Product, error) {
	defer r.rlock()()
	found := make(map[string]domain.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := r.store.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func (r *productRepository) ListProducts(_ context.Context, includeArchived bool) ([]domain.Product, error) {
	defer r.rlock()()
	products := make([]domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if p.IsArchived && !includeArchived {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}

func (r *productRepository) SaveProduct(_ context.Context, product domain.Product) error {
	defer r.lock()()
	if _, ok := r.store.products[product.ProductID]; ok {
		return fmt.Errorf("%w: product %s", apperrors.ErrDuplicate, product.ProductID)
	}
	r.store.products[product.ProductID] = product
	return nil
}

func (r *productRepository) UpdateProduct(_ context.Context, product domain.Product) error {
	defer r.lock()()
	current, ok := r.store.products[product.ProductID]
	if !ok {
		return fmt.Errorf("product %s: %w", product.ProductID, apperrors.ErrNotFound)
	}
	product.Stock = current.Stock
	r.store.products[product.ProductID] = product
	return nil
}

func (r *productRepository) AdjustStock(_ context.Context, productID string, delta int, userID string, now time.Time) (int, error) {
	defer r.lock()()
	p, ok := r.store.products[productID]
	if !ok {
		return 0, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	if delta > 0 && p.Stock > math.MaxInt-delta {
		return 0, fmt.Errorf("%w: stock of product %s would overflow (have %d, change %d)",
			apperrors.ErrValidation, productID, p.Stock, delta)
	}
	if p.Stock+delta < 0 {
		return 0, fmt.Errorf("%w: stock of product %s would go negative (have %d, change %d)",
			apperrors.ErrConflict, productID, p.Stock, delta)
	}
	p.Stock += delta
	p.Touch(userID, now)
	r.store.products[productID] = p
	return p.Stock, nil
}

type saleRepository struct{ repoBase }

var _ portsrepo.SaleRepositoryFacade = (*saleRepository)(nil)

func (r *saleRepository) FindSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	defer r.rlock()()
	s, ok := r.store.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	s.Items = cloneItems(s.Items)
	return &s, nil
}

func (r *saleRepository) ListSales(_ context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	defer r.rlock()()
	sales := make([]domain.Sale, 0)
	for _, s := range r.store.sales {
		if !filter.Matches(s) {
			continue
		}
		s.Items = cloneItems(s.Items)
		sales = append(sales, s)
	}
	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].Date.Equal(sales[j].Date) {
			return sales[i].Date.After(sales[j].Date)
		}
		return sales[i].SaleID < sales[j].SaleID
	})
	return sales, nil
}

func (r *saleRepository) HasPendingSaleForProduct(_ context.Context, productID string) (bool, error) {
	defer r.rlock()()
	for _, s := range r.store.sales {
		if !s.IsPending() {
			continue
		}
		for _, item := range s.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *saleRepository) SaveSale(_ context.Context, sale domain.Sale) error {
	defer r.lock()()
	if _, ok := r.store.sales[sale.SaleID]; ok {
		return fmt.Errorf("%w: sale %s", apperrors.ErrDuplicate, sale.SaleID)
	}
	sale.Items = cloneItems(sale.Items)
	r.store.sales[sale.SaleID] = sale
	return nil
}

func (r *saleRepository) UpdateSaleSettlement(_ context.Context, sale domain.Sale) error {
	defer r.lock()()
	current, ok := r.store.sales[sale.SaleID]
	if !ok {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrNotFound)
	}
	current.Status = sale.Status
	current.PaymentMethod = sale.PaymentMethod
	current.SettledAt = sale.SettledAt
	current.LastUpdatedAt = sale.LastUpdatedAt
	current.LastUpdatedBy = sale.LastUpdatedBy
	r.store.sales[sale.SaleID] = current
	return nil
}

func (r *saleRepository) DeleteSale(_ context.Context, saleID string) error {
	defer r.lock()()
	if _, ok := r.store.sales[saleID]; !ok {
		return fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	delete(r.store.sales, saleID)
	return nil
}

type transactionRepository struct{ repoBase }

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	defer r.rlock()()
	t, ok := r.store.transactions[transactionID]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	t.Items = cloneItems(t.Items)
	return &t, nil
}

func (r *transactionRepository) ListTransactions(_ context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	defer r.rlock()()
	txns := make([]domain.Transaction, 0)
	for _, t := range r.store.transactions {
		if !filter.Matches(t) {
			continue
		}
		t.Items = cloneItems(t.Items)
		txns = append(txns, t)
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].TransactionID < txns[j].TransactionID
	})
	return txns, nil
}

func (r *transactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	defer r.lock()()
	if _, ok := r.store.transactions[txn.TransactionID]; ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	txn.Items = cloneItems(txn.Items)
	txn.IsVirtual = false
	r.store.transactions[txn.TransactionID] = txn
	return nil
}

func (r *transactionRepository) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	defer r.lock()()
	current, ok := r.store.transactions[txn.TransactionID]
	if !ok {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}
	txn.Items = current.Items
	txn.IsVirtual = false
	r.store.transactions[txn.TransactionID] = txn
	return nil
}

func (r *transactionRepository) DeleteTransaction(_ context.Context, transactionID string) error {
	defer r.lock()()
	if _, ok := r.store.transactions[transactionID]; !ok {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	delete(r.store.transactions, transactionID)
	return nil
}

type projectionRepository struct{ repoBase }

var _ portsrepo.ProjectionRepositoryFacade = (*projectionRepository)(nil)

func (r *projectionRepository) FindProjectionByID(_ context.Context, projectionID string) (*domain.ProjectionItem, error) {
	defer r.rlock()()
	p, ok := r.store.projections[projectionID]
	if !ok {
		return nil, fmt.Errorf("projection %s: %w", projectionID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (r *projectionRepository) ListProjections(_ context.Context) ([]domain.ProjectionItem, error) {
	defer r.rlock()()
	projections := make([]domain.ProjectionItem, 0, len(r.store.projections))
	for _, p := range r.store.projections {
		projections = append(projections, p)
	}
	sort.Slice(projections, func(i, j int) bool {
		if !projections[i].CreatedAt.Equal(projections[j].CreatedAt) {
			return projections[i].CreatedAt.Before(projections[j].CreatedAt)
		}
		return projections[i].ProjectionID < projections[j].ProjectionID
	})
	return projections, nil
}

func (r *projectionRepository) SaveProjection(_ context.Context, projection domain.ProjectionItem) error {
	defer r.lock()()
	if _, ok := r.store.projections[projection.ProjectionID]; ok {
		return fmt.Errorf("%w: projection %s", apperrors.ErrDuplicate, projection.ProjectionID)
	}
	r.store.projections[projection.ProjectionID] = projection
	return nil
}

func (r *projectionRepository) UpdateProjection(_ context.Context, projection domain.ProjectionItem) error {
	defer r.lock()()
	if _, ok := r.store.projections[projection.ProjectionID]; !ok {
		return fmt.Errorf("projection %s: %w", projection.ProjectionID, apperrors.ErrNotFound)
	}
	r.store.projections[projection.ProjectionID] = projection
	return nil
}

func (r *projectionRepository) DeleteProjection(_ context.Context, projectionID string) error {
	defer r.lock()()
	if _, ok := r.store.projections[projectionID]; !ok {
		return fmt.Errorf("projection %s: %w", projectionID, apperrors.ErrNotFound)
	}
	delete(r.store.projections, projectionID)
	return nil
}

type personRepository struct{ repoBase }

var _ portsrepo.PersonRepositoryFacade = (*personRepository)(nil)

func (r *personRepository) FindPersonByID(_ context.Context, personID string) (*domain.Person, error) {
	defer r.rlock()()
	p, ok := r.store.people[personID]
	if !ok {
		return nil, fmt.Errorf("person %s: %w", personID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (r *personRepository) ListPeople(_ context.Context) ([]domain.Person, error) {
	defer r.rlock()()
	people := make([]domain.Person, 0, len(r.store.people))
	for _, p := range r.store.people {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool {
		if people[i].Name != people[j].Name {
			return people[i].Name < people[j].Name
		}
		return people[i].PersonID < people[j].PersonID
	})
	return people, nil
}

func (r *personRepository) SavePerson(_ context.Context, person domain.Person) error {
	defer r.lock()()
	if _, ok := r.store.people[person.PersonID]; ok {
		return fmt.Errorf("%w: person %s", apperrors.ErrDuplicate, person.PersonID)
	}
	r.store.people[person.PersonID] = person
	return nil
}

func (r *personRepository) UpdatePerson(_ context.Context, person domain.Person) error {
	defer r.lock()()
	if _, ok := r.store.people[person.PersonID]; !ok {
		return fmt.Errorf("person %s: %w", person.PersonID, apperrors.ErrNotFound)
	}
	r.store.people[person.PersonID] = person
	return nil
}

func (r *personRepository) DeletePerson(_ context.Context, personID string) error {
	defer r.lock()()
	if _, ok := r.store.people[personID]; !ok {
		return fmt.Errorf("person %s: %w", personID, apperrors.ErrNotFound)
	}
	delete(r.store.people, personID)
	return nil
}

type budgetRepository struct{ repoBase }

var _ portsrepo.BudgetSettingsRepository = (*budgetRepository)(nil)

func (r *budgetRepository) GetBudgetSettings(_ context.Context) (domain.BudgetSettings, error) {
	defer r.rlock()()
	return r.store.budget, nil
}

func (r *budgetRepository) SaveBudgetSettings(_ context.Context, settings domain.BudgetSettings) error {
	defer r.lock()()
	r.store.budget = settings
	return nil
}
