package services

import (
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
)

// NewServiceContainer creates a new service container. Every service shares the store
// and the options, so a Locker passed here serializes all of them.
func NewServiceContainer(store portsrepo.Store, opts ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Inventory:  NewInventoryService(store, opts...),
		Sale:       NewSaleService(store, opts...),
		Ledger:     NewLedgerService(store, opts...),
		Projection: NewProjectionService(store, opts...),
		Person:     NewPersonService(store, opts...),
		Reporting:  NewReportingService(store, opts...),
	}
}
