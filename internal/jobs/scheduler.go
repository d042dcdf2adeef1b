// Package jobs runs the periodic reports of the engine on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/middleware"
)

// LowStockSpec is when the low stock warning runs.
const LowStockSpec = "@every 1h"

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSpec reports whether spec is a schedule the scheduler accepts.
func ValidateSpec(spec string) error {
	if _, err := cronParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Options configures the Scheduler.
type Options struct {
	// DailyCloseSpec empty disables the daily close job.
	DailyCloseSpec string
	Location       *time.Location
	JobTimeout     time.Duration
}

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	sched    *cron.Cron
	services *portssvc.ServiceContainer
	logger   *slog.Logger
	loc      *time.Location
	timeout  time.Duration
	now      func() time.Time
}

// NewScheduler registers the daily close and low stock jobs. It does not start them.
func NewScheduler(services *portssvc.ServiceContainer, opts Options, logger *slog.Logger) (*Scheduler, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	timeout := opts.JobTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	s := &Scheduler{
		sched:    cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		services: services,
		logger:   logger.With(slog.String("component", "jobs")),
		loc:      loc,
		timeout:  timeout,
		now:      time.Now,
	}

	if opts.DailyCloseSpec != "" {
		if _, err := s.sched.AddFunc(opts.DailyCloseSpec, s.wrap("daily_close", s.RunDailyClose)); err != nil {
			return nil, fmt.Errorf("failed to schedule daily close %q: %w", opts.DailyCloseSpec, err)
		}
	}
	if _, err := s.sched.AddFunc(LowStockSpec, s.wrap("low_stock", s.RunLowStockCheck)); err != nil {
		return nil, fmt.Errorf("failed to schedule low stock check: %w", err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.sched.Entries())))
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
	}
}

func (s *Scheduler) wrap(name string, job func(ctx context.Context) error) func() {
	return func() {
		logger := s.logger.With(slog.String("job", name))
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Job panicked", slog.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		ctx = middleware.WithLogger(ctx, logger)

		if err := job(ctx); err != nil {
			logger.Error("Job failed", slog.String("error", err.Error()))
		}
	}
}

// RunDailyClose logs the canteen cash report of the current day.
func (s *Scheduler) RunDailyClose(ctx context.Context) error {
	day := s.now().In(s.loc)
	report, err := s.services.Reporting.DailyClose(ctx, day)
	if err != nil {
		return err
	}

	attrs := []any{
		slog.String("date", day.Format("2006-01-02")),
		slog.Int("sales", report.SalesCount),
		slog.Int("pending_sales", report.PendingSalesCount),
		slog.String("canteen_revenue", report.CanteenRevenue.StringFixed(2)),
		slog.String("cash_canteen_cost", report.CashCanteenCost.StringFixed(2)),
		slog.String("net_cash", report.NetCash.StringFixed(2)),
		slog.String("new_debt", report.NewDebt.StringFixed(2)),
	}
	for method, amount := range report.ByPaymentMethod {
		attrs = append(attrs, slog.String("method_"+string(method), amount.StringFixed(2)))
	}
	middleware.GetLoggerFromCtx(ctx).Info("Daily close", attrs...)
	return nil
}

// RunLowStockCheck warns about every active product at or below its reorder level.
func (s *Scheduler) RunLowStockCheck(ctx context.Context) error {
	products, err := s.services.Inventory.ListLowStock(ctx)
	if err != nil {
		return err
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, p := range products {
		logger.Warn("Low stock",
			slog.String("product_id", p.ProductID),
			slog.String("product", p.Name),
			slog.Int("stock", p.Stock),
			slog.Int("min_stock", p.MinStock),
		)
	}
	return nil
}
