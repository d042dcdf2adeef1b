package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	db querier
}

func newPgxBudgetRepository(db querier) portsrepo.BudgetSettingsRepository {
	return &PgxBudgetRepository{db: db}
}

var _ portsrepo.BudgetSettingsRepository = (*PgxBudgetRepository)(nil)

// GetBudgetSettings reads the single settings row. Inside a transaction the row is locked
// until commit, so a rent execution and its undo cannot interleave.
func (r *PgxBudgetRepository) GetBudgetSettings(ctx context.Context) (domain.BudgetSettings, error) {
	var m models.BudgetSettings
	err := r.db.QueryRow(ctx, `
		SELECT fixed_cost_rent, last_updated_at, last_updated_by
		FROM budget_settings
		WHERE id = 1
		FOR UPDATE;
	`).Scan(&m.FixedCostRent, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.BudgetSettings{FixedCostRent: decimal.Zero}, nil
	}
	if err != nil {
		return domain.BudgetSettings{}, dbError(err, "failed to load budget settings")
	}
	return mapping.ToDomainBudgetSettings(m), nil
}

// SaveBudgetSettings upserts the single settings row.
func (r *PgxBudgetRepository) SaveBudgetSettings(ctx context.Context, settings domain.BudgetSettings) error {
	m := mapping.ToModelBudgetSettings(settings)
	_, err := r.db.Exec(ctx, `
		INSERT INTO budget_settings (id, fixed_cost_rent, last_updated_at, last_updated_by)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET fixed_cost_rent = EXCLUDED.fixed_cost_rent,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`, m.FixedCostRent, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return dbError(err, "failed to save budget settings")
	}
	return nil
}
