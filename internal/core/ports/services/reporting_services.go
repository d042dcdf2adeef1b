package services

import (
	"context"
	"time"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// ReportingService derives read-only financial views from the current state.
type ReportingService interface {
	// FinancialSummary recomputes revenue, costs, profit and receivables.
	FinancialSummary(ctx context.Context) (*domain.FinancialSummary, error)

	// DailyClose reports canteen cash for the calendar day containing day.
	DailyClose(ctx context.Context, day time.Time) (*domain.DailyClose, error)

	// BudgetReport compares planned and executed projections.
	BudgetReport(ctx context.Context) (*domain.BudgetReport, error)
}
