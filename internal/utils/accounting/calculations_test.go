package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func txn(typ domain.TransactionType, cat domain.TransactionCategory, amount string, date time.Time) domain.Transaction {
	return domain.Transaction{TransactionID: string(typ) + string(cat) + amount, Type: typ, Category: cat, Amount: dec(amount), Date: date, Description: "x"}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)
	in := SummaryInput{
		People: []domain.Person{
			{PersonID: "p1", Name: "Ana", TotalPrice: dec("300"), AmountPaid: dec("300")},
			{PersonID: "p2", Name: "Bia", TotalPrice: dec("300"), AmountPaid: dec("100")},
			{PersonID: "p3", Name: "Caio", TotalPrice: dec("300"), AmountPaid: dec("0")},
		},
		Transactions: []domain.Transaction{
			txn(domain.Entrada, domain.CategoryCantina, "50", day),
			txn(domain.Entrada, domain.CategoryOutros, "20", day),
			txn(domain.Saida, domain.CategoryCantina, "40", day),
			txn(domain.Saida, domain.CategoryOutros, "30", day),
			txn(domain.Saida, domain.CategoryAluguelChacara, "999", day),
			{TransactionID: "auto-p1", Type: domain.Entrada, Category: domain.CategoryInscricao, Amount: dec("300"), IsVirtual: true},
		},
		Sales: []domain.Sale{
			{SaleID: "s1", Total: dec("50"), TotalCost: dec("20"), Status: domain.SalePaid, Date: day},
			{SaleID: "s2", Total: dec("15"), TotalCost: dec("6"), Status: domain.SalePending, PersonID: strPtr("p2"), PersonName: strPtr("Bia"), Date: day},
		},
		Products: []domain.Product{
			{ProductID: "a", CostPrice: dec("2"), Stock: 10},
			{ProductID: "b", CostPrice: dec("5"), Stock: 3, IsArchived: true},
		},
		Budget: domain.BudgetSettings{FixedCostRent: dec("1000")},
	}

	s := Summarize(in, day)

	assert.True(t, s.InscriptionRevenue.Equal(dec("400")), "inscriptions %s", s.InscriptionRevenue)
	assert.True(t, s.CanteenRevenue.Equal(dec("50")))
	assert.True(t, s.OtherRevenue.Equal(dec("20")))
	assert.True(t, s.TotalRevenue.Equal(dec("470")))
	assert.True(t, s.AccrualCOGS.Equal(dec("26")))
	assert.True(t, s.CashCanteenCost.Equal(dec("40")))
	assert.True(t, s.GrossCanteenMargin.Equal(dec("39")))
	assert.True(t, s.OtherExpenses.Equal(dec("70")), "other expenses %s", s.OtherExpenses)
	assert.True(t, s.TotalExpenses.Equal(dec("1070")))
	assert.True(t, s.NetProfit.Equal(dec("-600")))
	assert.True(t, s.Margin.Equal(dec("-1.2766")), "margin %s", s.Margin)
	assert.True(t, s.Receivables.Equal(dec("500")))
	assert.True(t, s.PendingDebt.Equal(dec("15")))
	assert.True(t, s.StockValue.Equal(dec("20")))
	require.Len(t, s.Debts, 1)
	assert.Equal(t, "Bia", s.Debts[0].PersonName)
}

func TestSummarize_EmptyStateHasZeroMargin(t *testing.T) {
	s := Summarize(SummaryInput{}, time.Now())

	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.Margin.IsZero())
	assert.Empty(t, s.Debts)
}

func TestCustomerDebts_GroupsAndOrders(t *testing.T) {
	d1 := time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)
	d2 := d1.Add(2 * time.Hour)
	sales := []domain.Sale{
		{SaleID: "1", Total: dec("10"), Status: domain.SalePending, PersonID: strPtr("p1"), PersonName: strPtr("Ana"), Date: d2},
		{SaleID: "2", Total: dec("20"), Status: domain.SalePending, PersonID: strPtr("p1"), PersonName: strPtr("Ana"), Date: d1},
		{SaleID: "3", Total: dec("25"), Status: domain.SalePending, PersonID: strPtr("p2"), PersonName: strPtr("Bia"), Date: d1},
		{SaleID: "4", Total: dec("99"), Status: domain.SalePaid, PersonID: strPtr("p2"), PersonName: strPtr("Bia"), Date: d1},
	}

	debts := CustomerDebts(sales)

	require.Len(t, debts, 2)
	assert.Equal(t, "p1", debts[0].PersonID)
	assert.True(t, debts[0].Total.Equal(dec("30")))
	assert.Equal(t, 2, debts[0].SaleCount)
	assert.Equal(t, d1, debts[0].OldestSale)
	assert.True(t, debts[1].Total.Equal(dec("25")))
}

func TestDailyClose(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	day := time.Date(2026, 7, 20, 15, 0, 0, 0, loc)
	yesterday := day.AddDate(0, 0, -1)

	pix := string(domain.PaymentPix)
	cash := string(domain.PaymentCash)
	paidPix := txn(domain.Entrada, domain.CategoryCantina, "12", day)
	paidPix.PaymentMethod = &pix
	paidCash := txn(domain.Entrada, domain.CategoryCantina, "8", day.Add(time.Hour))
	paidCash.PaymentMethod = &cash

	sales := []domain.Sale{
		{SaleID: "1", Total: dec("12"), Status: domain.SalePaid, Date: day},
		{SaleID: "2", Total: dec("7"), Status: domain.SalePending, PersonID: strPtr("p"), Date: day},
		{SaleID: "3", Total: dec("5"), Status: domain.SalePaid, Date: yesterday},
	}
	txns := []domain.Transaction{
		paidPix,
		paidCash,
		txn(domain.Saida, domain.CategoryCantina, "6", day),
		txn(domain.Saida, domain.CategoryOutros, "100", day),
		txn(domain.Entrada, domain.CategoryCantina, "5", yesterday),
	}

	report := DailyClose(day, sales, txns)

	assert.Equal(t, time.Date(2026, 7, 20, 0, 0, 0, 0, loc), report.Date)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, 1, report.PendingSalesCount)
	assert.True(t, report.NewDebt.Equal(dec("7")))
	assert.True(t, report.CanteenRevenue.Equal(dec("20")))
	assert.True(t, report.CashCanteenCost.Equal(dec("6")))
	assert.True(t, report.NetCash.Equal(dec("14")))
	assert.True(t, report.ByPaymentMethod[domain.PaymentPix].Equal(dec("12")))
	assert.True(t, report.ByPaymentMethod[domain.PaymentCash].Equal(dec("8")))
}

func TestBudgetReport(t *testing.T) {
	rent := domain.CategoryAluguelChacara
	projections := []domain.ProjectionItem{
		{ProjectionID: "1", Amount: dec("12500"), CategoryMapping: &rent, IsExecuted: true},
		{ProjectionID: "2", Amount: dec("300")},
		{ProjectionID: "3", Amount: dec("200"), IsExecuted: true},
	}

	report := BudgetReport(projections, domain.BudgetSettings{FixedCostRent: dec("12500")})

	require.Len(t, report.Lines, 2)
	assert.Equal(t, domain.CategoryAluguelChacara, report.Lines[0].Category)
	assert.True(t, report.Lines[1].Planned.Equal(dec("300")))
	assert.True(t, report.Lines[1].Executed.Equal(dec("200")))
	assert.True(t, report.TotalPlanned.Equal(dec("300")))
	assert.True(t, report.TotalExecuted.Equal(dec("12700")))
	assert.True(t, report.Total.Equal(dec("13000")))
	assert.True(t, report.FixedCostRent.Equal(dec("12500")))
}
