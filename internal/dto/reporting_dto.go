package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// SummaryResponse is the dashboard payload.
type SummaryResponse struct {
	Revenue struct {
		Inscriptions decimal.Decimal `json:"inscriptions"`
		Canteen      decimal.Decimal `json:"canteen"`
		Other        decimal.Decimal `json:"other"`
		Total        decimal.Decimal `json:"total"`
	} `json:"revenue"`
	Costs struct {
		AccrualCOGS        decimal.Decimal `json:"accrualCOGS"`
		CashCanteenCost    decimal.Decimal `json:"cashCanteenCost"`
		GrossCanteenMargin decimal.Decimal `json:"grossCanteenMargin"`
	} `json:"costs"`
	Expenses struct {
		FixedCostRent decimal.Decimal `json:"fixedCostRent"`
		Other         decimal.Decimal `json:"other"`
		Total         decimal.Decimal `json:"total"`
	} `json:"expenses"`
	NetProfit   decimal.Decimal        `json:"netProfit"`
	Margin      decimal.Decimal        `json:"margin"`
	Receivables decimal.Decimal        `json:"receivables"`
	PendingDebt decimal.Decimal        `json:"pendingDebt"`
	StockValue  decimal.Decimal        `json:"stockValue"`
	Debts       []CustomerDebtResponse `json:"debts"`
}

// DailyCloseResponse is the canteen cash report for one day.
type DailyCloseResponse struct {
	Date              string               `json:"date"`
	SalesCount        int                  `json:"salesCount"`
	PendingSalesCount int                  `json:"pendingSalesCount"`
	CanteenRevenue    decimal.Decimal      `json:"canteenRevenue"`
	CashCanteenCost   decimal.Decimal      `json:"cashCanteenCost"`
	NetCash           decimal.Decimal      `json:"netCash"`
	NewDebt           decimal.Decimal      `json:"newDebt"`
	ByPaymentMethod   []PaymentMethodTotal `json:"byPaymentMethod"`
}

// PaymentMethodTotal is the amount received through one payment method.
type PaymentMethodTotal struct {
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToSummaryResponse converts the dashboard summary.
func ToSummaryResponse(s *domain.FinancialSummary) SummaryResponse {
	var resp SummaryResponse
	resp.Revenue.Inscriptions = s.InscriptionRevenue
	resp.Revenue.Canteen = s.CanteenRevenue
	resp.Revenue.Other = s.OtherRevenue
	resp.Revenue.Total = s.TotalRevenue
	resp.Costs.AccrualCOGS = s.AccrualCOGS
	resp.Costs.CashCanteenCost = s.CashCanteenCost
	resp.Costs.GrossCanteenMargin = s.GrossCanteenMargin
	resp.Expenses.FixedCostRent = s.FixedCostRent
	resp.Expenses.Other = s.OtherExpenses
	resp.Expenses.Total = s.TotalExpenses
	resp.NetProfit = s.NetProfit
	resp.Margin = s.Margin
	resp.Receivables = s.Receivables
	resp.PendingDebt = s.PendingDebt
	resp.StockValue = s.StockValue
	resp.Debts = ToCustomerDebtResponses(s.Debts)
	return resp
}

// ToDailyCloseResponse converts a daily close report. Payment methods are sorted by name.
func ToDailyCloseResponse(d *domain.DailyClose) DailyCloseResponse {
	resp := DailyCloseResponse{
		Date:              d.Date.Format("2006-01-02"),
		SalesCount:        d.SalesCount,
		PendingSalesCount: d.PendingSalesCount,
		CanteenRevenue:    d.CanteenRevenue,
		CashCanteenCost:   d.CashCanteenCost,
		NetCash:           d.NetCash,
		NewDebt:           d.NewDebt,
		ByPaymentMethod:   make([]PaymentMethodTotal, 0, len(d.ByPaymentMethod)),
	}
	for method, amount := range d.ByPaymentMethod {
		resp.ByPaymentMethod = append(resp.ByPaymentMethod, PaymentMethodTotal{PaymentMethod: string(method), Amount: amount})
	}
	sort.Slice(resp.ByPaymentMethod, func(i, j int) bool {
		return resp.ByPaymentMethod[i].PaymentMethod < resp.ByPaymentMethod[j].PaymentMethod
	})
	return resp
}
