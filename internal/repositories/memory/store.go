// Package memory is an in-process implementation of the repository ports.
// It backs the default deployment and the service test suites.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

// Store keeps every aggregate in maps guarded by one RWMutex.
type Store struct {
	mu sync.RWMutex

	products     map[string]domain.Product
	sales        map[string]domain.Sale
	transactions map[string]domain.Transaction
	projections  map[string]domain.ProjectionItem
	people       map[string]domain.Person
	budget       domain.BudgetSettings
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]domain.Product),
		sales:        make(map[string]domain.Sale),
		transactions: make(map[string]domain.Transaction),
		projections:  make(map[string]domain.ProjectionItem),
		people:       make(map[string]domain.Person),
	}
}

var _ portsrepo.Store = (*Store)(nil)

// Repositories returns repositories that lock the store per call.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return s.provider(false)
}

// WithinTransaction holds the write lock for the whole of fn and puts the
// previous state back if fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, s.provider(true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) provider(inTx bool) portsrepo.RepositoryProvider {
	base := repoBase{store: s, inTx: inTx}
	return portsrepo.RepositoryProvider{
		ProductRepo:     &productRepository{base},
		SaleRepo:        &saleRepository{base},
		TransactionRepo: &transactionRepository{base},
		ProjectionRepo:  &projectionRepository{base},
		PersonRepo:      &personRepository{base},
		BudgetRepo:      &budgetRepository{base},
	}
}

type snapshot struct {
	products     map[string]domain.Product
	sales        map[string]domain.Sale
	transactions map[string]domain.Transaction
	projections  map[string]domain.ProjectionItem
	people       map[string]domain.Person
	budget       domain.BudgetSettings
}

// snapshot copies the maps. Values are replaced, never mutated in place, so a shallow copy is enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		products:     maps.Clone(s.products),
		sales:        maps.Clone(s.sales),
		transactions: maps.Clone(s.transactions),
		projections:  maps.Clone(s.projections),
		people:       maps.Clone(s.people),
		budget:       s.budget,
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.sales = snap.sales
	s.transactions = snap.transactions
	s.projections = snap.projections
	s.people = snap.people
	s.budget = snap.budget
}

// repoBase skips locking when the store lock is already held by WithinTransaction.
type repoBase struct {
	store *Store
	inTx  bool
}

func (b repoBase) rlock() func() {
	if b.inTx {
		return func() {}
	}
	b.store.mu.RLock()
	return b.store.mu.RUnlock
}

func (b repoBase) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.store.mu.Lock()
	return b.store.mu.Unlock
}
