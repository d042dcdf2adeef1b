// Package accounting holds the pure calculations behind the financial views.
// Nothing here touches storage; callers pass a snapshot in.
package accounting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// SummaryInput is the state snapshot the summary is derived from.
type SummaryInput struct {
	People       []domain.Person
	Sales        []domain.Sale
	Transactions []domain.Transaction
	Products     []domain.Product
	Budget       domain.BudgetSettings
}

// Summarize derives the dashboard figures.
//
// Rent is counted once through Budget.FixedCostRent; SAIDA rows categorised as
// ALUGUEL_CHACARA are left out of the expenses so a manual rent entry cannot double it.
// Virtual timeline rows are ignored, registration money comes from People.
func Summarize(in SummaryInput, now time.Time) domain.FinancialSummary {
	s := domain.FinancialSummary{
		InscriptionRevenue: decimal.Zero,
		CanteenRevenue:     decimal.Zero,
		OtherRevenue:       decimal.Zero,
		AccrualCOGS:        decimal.Zero,
		CashCanteenCost:    decimal.Zero,
		OtherExpenses:      decimal.Zero,
		Receivables:        decimal.Zero,
		PendingDebt:        decimal.Zero,
		StockValue:         decimal.Zero,
		Margin:             decimal.Zero,
		FixedCostRent:      in.Budget.FixedCostRent,
		GeneratedAt:        now,
	}

	for _, p := range in.People {
		s.InscriptionRevenue = s.InscriptionRevenue.Add(p.AmountPaid)
		s.Receivables = s.Receivables.Add(p.Outstanding())
	}

	for _, t := range in.Transactions {
		if t.IsVirtual {
			continue
		}
		switch t.Type {
		case domain.Entrada:
			if t.Category == domain.CategoryCantina {
				s.CanteenRevenue = s.CanteenRevenue.Add(t.Amount)
			} else {
				s.OtherRevenue = s.OtherRevenue.Add(t.Amount)
			}
		case domain.Saida:
			if t.Category == domain.CategoryCantina {
				s.CashCanteenCost = s.CashCanteenCost.Add(t.Amount)
			}
			if t.Category != domain.CategoryAluguelChacara {
				s.OtherExpenses = s.OtherExpenses.Add(t.Amount)
			}
		}
	}

	salesTotal := decimal.Zero
	for _, sale := range in.Sales {
		salesTotal = salesTotal.Add(sale.Total)
		s.AccrualCOGS = s.AccrualCOGS.Add(sale.TotalCost)
		if sale.IsPending() {
			s.PendingDebt = s.PendingDebt.Add(sale.Total)
		}
	}
	s.GrossCanteenMargin = salesTotal.Sub(s.AccrualCOGS)

	for _, p := range in.Products {
		if !p.IsArchived && p.Stock > 0 {
			s.StockValue = s.StockValue.Add(p.StockValue())
		}
	}

	s.TotalRevenue = s.InscriptionRevenue.Add(s.CanteenRevenue).Add(s.OtherRevenue)
	s.TotalExpenses = s.FixedCostRent.Add(s.OtherExpenses)
	s.NetProfit = s.TotalRevenue.Sub(s.TotalExpenses)
	if s.TotalRevenue.IsPositive() {
		s.Margin = s.NetProfit.DivRound(s.TotalRevenue, 4)
	}
	s.Debts = CustomerDebts(in.Sales)

	return s
}

// CustomerDebts groups pending sales by person, largest tab first.
// Pending sales always carry a person; any that do not are skipped.
func CustomerDebts(sales []domain.Sale) []domain.CustomerDebt {
	byPerson := make(map[string]*domain.CustomerDebt)
	for _, sale := range sales {
		if !sale.IsPending() || sale.PersonID == nil {
			continue
		}
		debt, ok := byPerson[*sale.PersonID]
		if !ok {
			debt = &domain.CustomerDebt{PersonID: *sale.PersonID, Total: decimal.Zero, OldestSale: sale.Date}
			byPerson[*sale.PersonID] = debt
		}
		if sale.PersonName != nil {
			debt.PersonName = *sale.PersonName
		}
		debt.Total = debt.Total.Add(sale.Total)
		debt.SaleCount++
		if sale.Date.Before(debt.OldestSale) {
			debt.OldestSale = sale.Date
		}
	}

	debts := make([]domain.CustomerDebt, 0, len(byPerson))
	for _, d := range byPerson {
		debts = append(debts, *d)
	}
	sort.Slice(debts, func(i, j int) bool {
		if !debts[i].Total.Equal(debts[j].Total) {
			return debts[i].Total.GreaterThan(debts[j].Total)
		}
		return debts[i].PersonName < debts[j].PersonName
	})
	return debts
}

// NetCash is the signed sum of the rows: ENTRADA adds, SAIDA subtracts.
func NetCash(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.SignedAmount())
	}
	return sum
}

// DayBounds returns the start of the calendar day containing t and the start of the next one.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DailyClose reports the canteen cash of the calendar day containing day.
// Sales are counted by the day they were rung up; cash by the day it moved,
// so a tab settled today counts as today's revenue.
func DailyClose(day time.Time, sales []domain.Sale, txns []domain.Transaction) domain.DailyClose {
	start, end := DayBounds(day)
	inDay := func(t time.Time) bool { return !t.Before(start) && t.Before(end) }

	report := domain.DailyClose{
		Date:            start,
		CanteenRevenue:  decimal.Zero,
		CashCanteenCost: decimal.Zero,
		NewDebt:         decimal.Zero,
		ByPaymentMethod: make(map[domain.PaymentMethod]decimal.Decimal),
	}

	for _, sale := range sales {
		if !inDay(sale.Date) {
			continue
		}
		report.SalesCount++
		if sale.IsPending() {
			report.PendingSalesCount++
			report.NewDebt = report.NewDebt.Add(sale.Total)
		}
	}

	canteen := make([]domain.Transaction, 0)
	for _, t := range txns {
		if t.IsVirtual || t.Category != domain.CategoryCantina || !inDay(t.Date) {
			continue
		}
		canteen = append(canteen, t)
		switch t.Type {
		case domain.Entrada:
			report.CanteenRevenue = report.CanteenRevenue.Add(t.Amount)
			method := domain.PaymentMethod("")
			if t.PaymentMethod != nil {
				method = domain.PaymentMethod(*t.PaymentMethod)
			}
			report.ByPaymentMethod[method] = report.ByPaymentMethod[method].Add(t.Amount)
		case domain.Saida:
			report.CashCanteenCost = report.CashCanteenCost.Add(t.Amount)
		}
	}
	report.NetCash = NetCash(canteen)

	return report
}

// BudgetReport splits projections into still-planned and executed amounts per category.
// Rows without a category mapping count as OUTROS.
func BudgetReport(projections []domain.ProjectionItem, budget domain.BudgetSettings) domain.BudgetReport {
	lines := make(map[domain.TransactionCategory]*domain.BudgetLine)
	report := domain.BudgetReport{
		TotalPlanned:  decimal.Zero,
		TotalExecuted: decimal.Zero,
		FixedCostRent: budget.FixedCostRent,
	}

	for _, p := range projections {
		category := domain.CategoryOutros
		if p.CategoryMapping != nil {
			category = *p.CategoryMapping
		}
		line, ok := lines[category]
		if !ok {
			line = &domain.BudgetLine{Category: category, Planned: decimal.Zero, Executed: decimal.Zero}
			lines[category] = line
		}
		if p.IsExecuted {
			line.Executed = line.Executed.Add(p.Amount)
			report.TotalExecuted = report.TotalExecuted.Add(p.Amount)
		} else {
			line.Planned = line.Planned.Add(p.Amount)
			report.TotalPlanned = report.TotalPlanned.Add(p.Amount)
		}
	}

	report.Lines = make([]domain.BudgetLine, 0, len(lines))
	for _, l := range lines {
		report.Lines = append(report.Lines, *l)
	}
	sort.Slice(report.Lines, func(i, j int) bool { return report.Lines[i].Category < report.Lines[j].Category })
	report.Total = report.TotalPlanned.Add(report.TotalExecuted)

	return report
}
