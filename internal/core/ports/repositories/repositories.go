package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	ProductRepo     ProductRepositoryFacade
	SaleRepo        SaleRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ProjectionRepo  ProjectionRepositoryFacade
	PersonRepo      PersonRepositoryFacade
	BudgetRepo      BudgetSettingsRepository
}

// Store gives access to the repositories and runs units of work.
type Store interface {
	// Repositories returns repositories bound to no transaction, for reads and single writes.
	Repositories() RepositoryProvider

	// WithinTransaction runs fn against repositories bound to one transaction.
	// Everything fn wrote is committed when it returns nil and discarded otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos RepositoryProvider) error) error
}
