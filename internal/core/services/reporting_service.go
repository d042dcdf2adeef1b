package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/accounting"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	store portsrepo.Store
}

// NewReportingService creates a new reporting service.
func NewReportingService(store portsrepo.Store, opts ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService: newBaseService(opts...),
		store:       store,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// snapshot reads everything the summary needs inside one unit of work so the figures agree.
func (s *reportingService) snapshot(ctx context.Context) (accounting.SummaryInput, error) {
	var in accounting.SummaryInput
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		if in.People, err = repos.PersonRepo.ListPeople(ctx); err != nil {
			return fmt.Errorf("failed to list people: %w", err)
		}
		if in.Sales, err = repos.SaleRepo.ListSales(ctx, domain.SaleFilter{}); err != nil {
			return fmt.Errorf("failed to list sales: %w", err)
		}
		if in.Transactions, err = repos.TransactionRepo.ListTransactions(ctx, domain.TransactionFilter{}); err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		if in.Products, err = repos.ProductRepo.ListProducts(ctx, false); err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		if in.Budget, err = repos.BudgetRepo.GetBudgetSettings(ctx); err != nil {
			return fmt.Errorf("failed to load budget settings: %w", err)
		}
		return nil
	})
	return in, err
}

// FinancialSummary recomputes the dashboard figures from the current state.
func (s *reportingService) FinancialSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	in, err := s.snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load summary snapshot")
		return nil, err
	}

	summary := accounting.Summarize(in, s.Now())
	s.LogDebug(ctx, "Financial summary computed",
		slog.String("total_revenue", summary.TotalRevenue.String()),
		slog.String("net_profit", summary.NetProfit.String()))
	return &summary, nil
}

// DailyClose reports the canteen cash of the calendar day containing day, in day's location.
func (s *reportingService) DailyClose(ctx context.Context, day time.Time) (*domain.DailyClose, error) {
	from, to := accounting.DayBounds(day)
	repos := s.store.Repositories()

	sales, err := repos.SaleRepo.ListSales(ctx, domain.SaleFilter{From: &from, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales for daily close")
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	txns, err := repos.TransactionRepo.ListTransactions(ctx, domain.TransactionFilter{From: &from, To: &to})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for daily close")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	closing := accounting.DailyClose(day, sales, txns)
	return &closing, nil
}

// BudgetReport compares planned and executed projections per category.
func (s *reportingService) BudgetReport(ctx context.Context) (*domain.BudgetReport, error) {
	repos := s.store.Repositories()
	projections, err := repos.ProjectionRepo.ListProjections(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projections for budget report")
		return nil, fmt.Errorf("failed to list projections: %w", err)
	}
	settings, err := repos.BudgetRepo.GetBudgetSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load budget settings for budget report")
		return nil, fmt.Errorf("failed to load budget settings: %w", err)
	}

	report := accounting.BudgetReport(projections, settings)
	return &report, nil
}
