package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// ProjectionReaderSvc defines read operations for the expense projections
type ProjectionReaderSvc interface {
	GetProjection(ctx context.Context, projectionID string) (*domain.ProjectionItem, error)
	ListProjections(ctx context.Context) ([]domain.ProjectionItem, error)
	GetBudgetSettings(ctx context.Context) (domain.BudgetSettings, error)
}

// ProjectionWriterSvc defines write operations for the expense projections
type ProjectionWriterSvc interface {
	CreateProjection(ctx context.Context, req dto.CreateProjectionRequest, userID string) (*domain.ProjectionItem, error)
	UpdateProjection(ctx context.Context, projectionID string, req dto.UpdateProjectionRequest, userID string) (*domain.ProjectionItem, error)
	DeleteProjection(ctx context.Context, projectionID string, userID string) error

	// UpdateFixedCostRent edits the rent baseline outside of any projection.
	UpdateFixedCostRent(ctx context.Context, amount decimal.Decimal, userID string) (domain.BudgetSettings, error)
}

// ProjectionExecutorSvc turns projections into real expenses and back
type ProjectionExecutorSvc interface {
	// ReviewAndExecute books the reviewed amount, either as the rent baseline or as a SAIDA row.
	ReviewAndExecute(ctx context.Context, projectionID string, req dto.ExecuteProjectionRequest, userID string) (*domain.ProjectionItem, error)

	// UndoExecution reverts the last execution. It returns nil when the row itself was removed
	// (STOCK and MOVEMENT rows) and is a no-op on a planned BASE row.
	UndoExecution(ctx context.Context, projectionID string, userID string) (*domain.ProjectionItem, error)

	// RegisterCurrentStockCost books the value of the stock on hand as one SAIDA/CANTINA row
	// and an executed STOCK projection.
	RegisterCurrentStockCost(ctx context.Context, userID string) (*domain.ProjectionItem, error)
}

// ProjectionSvcFacade combines all projection service interfaces
type ProjectionSvcFacade interface {
	ProjectionReaderSvc
	ProjectionWriterSvc
	ProjectionExecutorSvc
}
