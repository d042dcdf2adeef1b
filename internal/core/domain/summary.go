package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary is the dashboard view derived from the current state.
//
// AccrualCOGS is the cost of every sale at the time it was made (paid or pending).
// CashCanteenCost is what left the cash box for canteen stock (SAIDA/CANTINA rows).
// They differ on purpose and are reported side by side.
type FinancialSummary struct {
	InscriptionRevenue decimal.Decimal `json:"inscriptionRevenue"`
	CanteenRevenue     decimal.Decimal `json:"canteenRevenue"`
	OtherRevenue       decimal.Decimal `json:"otherRevenue"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	AccrualCOGS        decimal.Decimal `json:"accrualCOGS"`
	CashCanteenCost    decimal.Decimal `json:"cashCanteenCost"`
	GrossCanteenMargin decimal.Decimal `json:"grossCanteenMargin"`
	FixedCostRent      decimal.Decimal `json:"fixedCostRent"`
	OtherExpenses      decimal.Decimal `json:"otherExpenses"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	Margin             decimal.Decimal `json:"margin"`
	Receivables        decimal.Decimal `json:"receivables"`
	PendingDebt        decimal.Decimal `json:"pendingDebt"`
	StockValue         decimal.Decimal `json:"stockValue"`
	Debts              []CustomerDebt  `json:"debts"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// DailyClose is the canteen cash report of one calendar day.
type DailyClose struct {
	Date              time.Time                         `json:"date"`
	SalesCount        int                               `json:"salesCount"`
	PendingSalesCount int                               `json:"pendingSalesCount"`
	CanteenRevenue    decimal.Decimal                   `json:"canteenRevenue"`
	CashCanteenCost   decimal.Decimal                   `json:"cashCanteenCost"`
	NetCash           decimal.Decimal                   `json:"netCash"`
	NewDebt           decimal.Decimal                   `json:"newDebt"`
	ByPaymentMethod   map[PaymentMethod]decimal.Decimal `json:"byPaymentMethod"`
}

// BudgetLine compares what is still planned with what was executed in one category.
type BudgetLine struct {
	Category TransactionCategory `json:"category"`
	Planned  decimal.Decimal     `json:"planned"`
	Executed decimal.Decimal     `json:"executed"`
}

// BudgetReport is the budget-vs-actual view of the projections.
type BudgetReport struct {
	Lines         []BudgetLine    `json:"lines"`
	TotalPlanned  decimal.Decimal `json:"totalPlanned"`
	TotalExecuted decimal.Decimal `json:"totalExecuted"`
	Total         decimal.Decimal `json:"total"`
	FixedCostRent decimal.Decimal `json:"fixedCostRent"`
}
