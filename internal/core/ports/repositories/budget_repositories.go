package repositories

import (
	"context"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// BudgetSettingsRepository reads and writes the single budget settings row.
// A store that was never written returns zero settings, not ErrNotFound.
type BudgetSettingsRepository interface {
	GetBudgetSettings(ctx context.Context) (domain.BudgetSettings, error)
	SaveBudgetSettings(ctx context.Context, settings domain.BudgetSettings) error
}
