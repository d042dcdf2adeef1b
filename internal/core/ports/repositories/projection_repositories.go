package repositories

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// ProjectionReader defines read operations for budget projections
type ProjectionReader interface {
	FindProjectionByID(ctx context.Context, projectionID string) (*domain.ProjectionItem, error)
	ListProjections(ctx context.Context) ([]domain.ProjectionItem, error)
}

// ProjectionWriter defines write operations for budget projections
type ProjectionWriter interface {
	SaveProjection(ctx context.Context, projection domain.ProjectionItem) error

	// UpdateProjection persists the planned fields together with the execution links.
	UpdateProjection(ctx context.Context, projection domain.ProjectionItem) error

	DeleteProjection(ctx context.Context, projectionID string) error
}

// ProjectionRepositoryFacade combines all projection repository interfaces
type ProjectionRepositoryFacade interface {
	ProjectionReader
	ProjectionWriter
}
