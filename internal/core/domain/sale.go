package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the settlement state of a sale.
type SaleStatus string

const (
	SalePaid    SaleStatus = "PAID"
	SalePending SaleStatus = "PENDING"
)

// PaymentMethod is how the customer paid. Pendência puts the sale on the customer's tab.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Dinheiro"
	PaymentPix        PaymentMethod = "Pix"
	PaymentCreditCard PaymentMethod = "Cartão de Crédito"
	PaymentDebitCard  PaymentMethod = "Cartão de Débito"
	PaymentOnAccount  PaymentMethod = "Pendência"
)

// IsValid reports whether the method is one the canteen accepts.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentOnAccount:
		return true
	}
	return false
}

// SaleItem is a snapshot of one product line at the moment of sale.
// Later price or cost edits on the product never touch it.
type SaleItem struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// Subtotal is quantity × unit price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CostSubtotal is quantity × unit cost.
func (i SaleItem) CostSubtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale is a canteen sale, either paid on the spot or carried as debt.
type Sale struct {
	SaleID        string          `json:"saleID"`
	Items         []SaleItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	Date          time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PersonID      *string         `json:"personID,omitempty"`
	PersonName    *string         `json:"personName,omitempty"`
	Status        SaleStatus      `json:"status"`
	SettledAt     *time.Time      `json:"settledAt,omitempty"`
	AuditFields
}

// SaleTotals sums price and cost over the given lines.
func SaleTotals(items []SaleItem) (total, totalCost decimal.Decimal) {
	total, totalCost = decimal.Zero, decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
		totalCost = totalCost.Add(item.CostSubtotal())
	}
	return total, totalCost
}

// IsPending reports whether the sale is still on the customer's tab.
func (s Sale) IsPending() bool {
	return s.Status == SalePending
}

// CustomerDebt is the outstanding tab of one person.
type CustomerDebt struct {
	PersonID   string          `json:"personID"`
	PersonName string          `json:"personName"`
	Total      decimal.Decimal `json:"total"`
	SaleCount  int             `json:"saleCount"`
	OldestSale time.Time       `json:"oldestSale"`
}

// SaleFilter narrows sale listings. Zero values mean no filter.
type SaleFilter struct {
	Status   *SaleStatus
	PersonID *string
	From     *time.Time
	To       *time.Time
}

// Matches reports whether s passes the filter. To is exclusive.
func (f SaleFilter) Matches(s Sale) bool {
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.PersonID != nil && (s.PersonID == nil || *s.PersonID != *f.PersonID) {
		return false
	}
	if f.From != nil && s.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !s.Date.Before(*f.To) {
		return false
	}
	return true
}
