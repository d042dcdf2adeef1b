package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// SaleItemRequest is one cart line.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// RegisterSaleRequest defines the data needed to ring up a canteen sale.
// PersonID is mandatory when PaymentMethod is "Pendência".
type RegisterSaleRequest struct {
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	PersonID      *string           `json:"personID,omitempty"`
}

// SettleRequest carries the method used to pay off debt.
type SettleRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// ListSalesParams defines the query parameters for listing sales.
type ListSalesParams struct {
	Status   *string    `form:"status"`
	PersonID *string    `form:"personID"`
	From     *time.Time `form:"-"`
	To       *time.Time `form:"-"`
}

// SaleItemResponse is a sale line snapshot.
type SaleItemResponse struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID        string             `json:"saleID"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	TotalCost     decimal.Decimal    `json:"totalCost"`
	Date          time.Time          `json:"date"`
	PaymentMethod string             `json:"paymentMethod"`
	PersonID      *string            `json:"personID,omitempty"`
	PersonName    *string            `json:"personName,omitempty"`
	Status        string             `json:"status"`
	SettledAt     *time.Time         `json:"settledAt,omitempty"`
}

// CustomerDebtResponse is one person's open tab.
type CustomerDebtResponse struct {
	PersonID   string          `json:"personID"`
	PersonName string          `json:"personName"`
	Total      decimal.Decimal `json:"total"`
	SaleCount  int             `json:"saleCount"`
	OldestSale time.Time       `json:"oldestSale"`
}

// ToSaleItemResponses converts sale line snapshots.
func ToSaleItemResponses(items []domain.SaleItem) []SaleItemResponse {
	responses := make([]SaleItemResponse, len(items))
	for i, item := range items {
		responses[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			UnitCost:    item.UnitCost,
			Subtotal:    item.Subtotal(),
		}
	}
	return responses
}

// ToSaleResponse converts a domain.Sale to its DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:        s.SaleID,
		Items:         ToSaleItemResponses(s.Items),
		Total:         s.Total,
		TotalCost:     s.TotalCost,
		Date:          s.Date,
		PaymentMethod: string(s.PaymentMethod),
		PersonID:      s.PersonID,
		PersonName:    s.PersonName,
		Status:        string(s.Status),
		SettledAt:     s.SettledAt,
	}
}

// ToSaleResponses converts a slice of domain.Sale.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}

// ToCustomerDebtResponses converts the debt view.
func ToCustomerDebtResponses(debts []domain.CustomerDebt) []CustomerDebtResponse {
	responses := make([]CustomerDebtResponse, len(debts))
	for i, d := range debts {
		responses[i] = CustomerDebtResponse(d)
	}
	return responses
}
