package services

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// SaleReaderSvc defines read operations for sales and debt
type SaleReaderSvc interface {
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error)

	// ListCustomerDebts groups pending sales by person, largest tab first.
	ListCustomerDebts(ctx context.Context) ([]domain.CustomerDebt, error)
}

// SaleWriterSvc defines write operations for sales and debt
type SaleWriterSvc interface {
	// RegisterSale snapshots prices, takes the units out of stock and records the sale.
	// A paid sale also lands in the ledger as ENTRADA/CANTINA.
	RegisterSale(ctx context.Context, req dto.RegisterSaleRequest, userID string) (*domain.Sale, error)

	// SettleSale pays off one pending sale and returns the ledger row it produced.
	SettleSale(ctx context.Context, saleID string, req dto.SettleRequest, userID string) (*domain.Transaction, error)

	// SettleAllCustomerDebt pays off every pending sale of a person with one aggregate ledger row.
	// It returns nil when the person has no pending debt.
	SettleAllCustomerDebt(ctx context.Context, personID string, req dto.SettleRequest, userID string) (*domain.Transaction, error)

	// DeleteSale removes a sale and puts its units back in stock. Ledger rows already produced are kept.
	DeleteSale(ctx context.Context, saleID string, userID string) error
}

// SaleSvcFacade combines all sale service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}
