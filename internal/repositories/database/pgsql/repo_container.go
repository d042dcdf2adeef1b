package pgsql

import (
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
)

func newRepositoryProvider(q querier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProductRepo:     newPgxProductRepository(q),
		SaleRepo:        newPgxSaleRepository(q),
		TransactionRepo: newPgxTransactionRepository(q),
		ProjectionRepo:  newPgxProjectionRepository(q),
		PersonRepo:      newPgxPersonRepository(q),
		BudgetRepo:      newPgxBudgetRepository(q),
	}
}
