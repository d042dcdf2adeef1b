package mapping

import (
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
)

// ToDomainBudgetSettings converts the stored budget row
func ToDomainBudgetSettings(m models.BudgetSettings) domain.BudgetSettings {
	return domain.BudgetSettings(m)
}

// ToModelBudgetSettings converts the budget aggregate to its stored row
func ToModelBudgetSettings(d domain.BudgetSettings) models.BudgetSettings {
	return models.BudgetSettings(d)
}
