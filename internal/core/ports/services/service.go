package services

// ServiceContainer holds instances of all the application services.
// It is the entry point handlers and jobs use to reach the engine.
type ServiceContainer struct {
	Inventory  InventorySvcFacade
	Sale       SaleSvcFacade
	Ledger     LedgerSvcFacade
	Projection ProjectionSvcFacade
	Person     PersonSvcFacade
	Reporting  ReportingService
}
