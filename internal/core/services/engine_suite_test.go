package services_test

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/platform/lock"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/repositories/memory"
)

const testUser = "tester"

// failingStore fails every ledger write made inside a unit of work while armed.
type failingStore struct {
	*memory.Store
	armed bool
}

type failingTransactionRepo struct {
	portsrepo.TransactionRepositoryFacade
}

func (failingTransactionRepo) SaveTransaction(context.Context, domain.Transaction) error {
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert transaction", context.DeadlineExceeded)
}

func (f *failingStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	return f.Store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if f.armed {
			repos.TransactionRepo = failingTransactionRepo{repos.TransactionRepo}
		}
		return fn(ctx, repos)
	})
}

// EngineTestSuite runs the services against the in-memory store with a fixed clock.
type EngineTestSuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *failingStore
	svc   *portssvc.ServiceContainer
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC)
	s.store = &failingStore{Store: memory.NewStore()}
	s.svc = services.NewServiceContainer(s.store,
		services.WithClock(func() time.Time { return s.now }),
		services.WithLocker(lock.NewKeyedMutex()),
	)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *EngineTestSuite) product(name string, cost, price string, stock int) *domain.Product {
	p, err := s.svc.Inventory.CreateProduct(s.ctx, dto.CreateProductRequest{
		Name:      name,
		CostPrice: dec(cost),
		SellPrice: dec(price),
		Stock:     stock,
	}, testUser)
	s.Require().NoError(err)
	return p
}

func (s *EngineTestSuite) person(name string) *domain.Person {
	p, err := s.svc.Person.CreatePerson(s.ctx, dto.CreatePersonRequest{Name: name, TotalPrice: dec("300")}, testUser)
	s.Require().NoError(err)
	return p
}

func (s *EngineTestSuite) stockOf(productID string) int {
	p, err := s.svc.Inventory.GetProduct(s.ctx, productID)
	s.Require().NoError(err)
	return p.Stock
}

func (s *EngineTestSuite) transactions() []domain.Transaction {
	txns, err := s.svc.Ledger.ListTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	return txns
}

func (s *EngineTestSuite) sales() []domain.Sale {
	sales, err := s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{})
	s.Require().NoError(err)
	return sales
}

func (s *EngineTestSuite) sell(productID string, qty int, method string, personID *string) *domain.Sale {
	sale, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: qty}},
		PaymentMethod: method,
		PersonID:      personID,
	}, testUser)
	s.Require().NoError(err)
	return sale
}
