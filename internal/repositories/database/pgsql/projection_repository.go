package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/mapping"
)

type PgxProjectionRepository struct {
	db querier
}

func newPgxProjectionRepository(db querier) portsrepo.ProjectionRepositoryFacade {
	return &PgxProjectionRepository{db: db}
}

var _ portsrepo.ProjectionRepositoryFacade = (*PgxProjectionRepository)(nil)

const projectionColumns = `projection_id, label, amount, category_mapping, is_executed, executed_transaction_id,
	previous_rent_value, executed_at, source, created_at, created_by, last_updated_at, last_updated_by`

func scanProjection(row pgx.Row) (models.Projection, error) {
	var m models.Projection
	var previousRent decimal.NullDecimal
	err := row.Scan(
		&m.ProjectionID,
		&m.Label,
		&m.Amount,
		&m.CategoryMapping,
		&m.IsExecuted,
		&m.ExecutedTransactionID,
		&previousRent,
		&m.ExecutedAt,
		&m.Source,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if previousRent.Valid {
		m.PreviousRentValue = &previousRent.Decimal
	}
	return m, err
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// SaveProjection inserts a projection row.
func (r *PgxProjectionRepository) SaveProjection(ctx context.Context, projection domain.ProjectionItem) error {
	m := mapping.ToModelProjection(projection)
	query := `
		INSERT INTO projections (` + projectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.ProjectionID, m.Label, m.Amount, m.CategoryMapping, m.IsExecuted, m.ExecutedTransactionID,
		nullDecimal(m.PreviousRentValue), m.ExecutedAt, m.Source, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save projection %s", m.ProjectionID)
	}
	return nil
}

// FindProjectionByID retrieves a projection by its ID.
func (r *PgxProjectionRepository) FindProjectionByID(ctx context.Context, projectionID string) (*domain.ProjectionItem, error) {
	query := `SELECT ` + projectionColumns + ` FROM projections WHERE projection_id = $1;`
	m, err := scanProjection(r.db.QueryRow(ctx, query, projectionID))
	if err != nil {
		return nil, dbError(err, "failed to find projection %s", projectionID)
	}
	d := mapping.ToDomainProjection(m)
	return &d, nil
}

// ListProjections lists projections in creation order.
func (r *PgxProjectionRepository) ListProjections(ctx context.Context) ([]domain.ProjectionItem, error) {
	query := `SELECT ` + projectionColumns + ` FROM projections ORDER BY created_at, projection_id;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, dbError(err, "failed to list projections")
	}
	defer rows.Close()

	projections := []domain.ProjectionItem{}
	for rows.Next() {
		m, err := scanProjection(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan projection row")
		}
		projections = append(projections, mapping.ToDomainProjection(m))
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating projection rows")
	}
	return projections, nil
}

// UpdateProjection writes the planned fields and the execution links together.
func (r *PgxProjectionRepository) UpdateProjection(ctx context.Context, projection domain.ProjectionItem) error {
	m := mapping.ToModelProjection(projection)
	query := `
		UPDATE projections
		SET label = $2, amount = $3, category_mapping = $4, is_executed = $5, executed_transaction_id = $6,
			previous_rent_value = $7, executed_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE projection_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ProjectionID, m.Label, m.Amount, m.CategoryMapping, m.IsExecuted, m.ExecutedTransactionID,
		nullDecimal(m.PreviousRentValue), m.ExecutedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update projection %s", m.ProjectionID)
	}
	return expectOneRow(tag, "projection", m.ProjectionID)
}

// DeleteProjection removes a projection row.
func (r *PgxProjectionRepository) DeleteProjection(ctx context.Context, projectionID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projections WHERE projection_id = $1;`, projectionID)
	if err != nil {
		return dbError(err, "failed to delete projection %s", projectionID)
	}
	return expectOneRow(tag, "projection", projectionID)
}
