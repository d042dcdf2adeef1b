package jobs

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/repositories/memory"
)

func newTestScheduler(t *testing.T, spec string, now time.Time) (*Scheduler, *bytes.Buffer) {
	t.Helper()
	clock := func() time.Time { return now }
	container := services.NewServiceContainer(memory.NewStore(), services.WithClock(clock))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewScheduler(container, Options{DailyCloseSpec: spec, Location: time.UTC}, logger)
	require.NoError(t, err)
	s.now = clock
	return s, &buf
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec("0 0 23 * * *"))
	assert.NoError(t, ValidateSpec("0 23 * * *"))
	assert.NoError(t, ValidateSpec("@daily"))
	assert.Error(t, ValidateSpec("every evening"))
}

func TestNewScheduler_RegistersJobs(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	s, _ := newTestScheduler(t, "0 0 23 * * *", now)
	assert.Len(t, s.sched.Entries(), 2)

	s, _ = newTestScheduler(t, "", now)
	assert.Len(t, s.sched.Entries(), 1)

	_, err := NewScheduler(services.NewServiceContainer(memory.NewStore()), Options{DailyCloseSpec: "nope"}, slog.Default())
	assert.Error(t, err)
}

func TestRunDailyClose_LogsReport(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	s, buf := newTestScheduler(t, "@daily", now)
	ctx := context.Background()

	product, err := s.services.Inventory.CreateProduct(ctx, dto.CreateProductRequest{
		Name:      "Refrigerante",
		CostPrice: decimal.NewFromInt(3),
		SellPrice: decimal.NewFromInt(5),
		Stock:     10,
	}, "tester")
	require.NoError(t, err)

	_, err = s.services.Sale.RegisterSale(ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: product.ProductID, Quantity: 2}},
		PaymentMethod: "Pix",
	}, "tester")
	require.NoError(t, err)

	s.wrap("daily_close", s.RunDailyClose)()

	out := buf.String()
	assert.Contains(t, out, `"msg":"Daily close"`)
	assert.Contains(t, out, `"date":"2026-01-10"`)
	assert.Contains(t, out, `"sales":1`)
	assert.Contains(t, out, `"canteen_revenue":"10.00"`)
	assert.Contains(t, out, `"method_Pix":"10.00"`)
	assert.NotContains(t, out, "Job failed")
}

func TestRunLowStockCheck_WarnsPerProduct(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	s, buf := newTestScheduler(t, "", now)
	ctx := context.Background()

	_, err := s.services.Inventory.CreateProduct(ctx, dto.CreateProductRequest{Name: "Água", Stock: 2, MinStock: 5}, "tester")
	require.NoError(t, err)
	_, err = s.services.Inventory.CreateProduct(ctx, dto.CreateProductRequest{Name: "Bolo", Stock: 20, MinStock: 5}, "tester")
	require.NoError(t, err)

	s.wrap("low_stock", s.RunLowStockCheck)()

	out := buf.String()
	assert.Contains(t, out, `"product":"Água"`)
	assert.NotContains(t, out, `"product":"Bolo"`)
}

func TestWrap_RecoversPanics(t *testing.T) {
	s, buf := newTestScheduler(t, "", time.Now())

	assert.NotPanics(t, func() {
		s.wrap("boom", func(context.Context) error { panic("boom") })()
	})
	assert.Contains(t, buf.String(), "Job panicked")
}
