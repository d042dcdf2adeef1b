package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// CreateTransactionRequest defines a manual ledger entry.
type CreateTransactionRequest struct {
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" binding:"required,oneof=ENTRADA SAIDA"`
	Category      string          `json:"category" binding:"required,oneof=INSCRICAO CANTINA ALUGUEL_CHACARA OUTROS"`
	Date          *time.Time      `json:"date,omitempty"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	PersonID      *string         `json:"personID,omitempty"`
	PersonName    *string         `json:"personName,omitempty"`
	IsSettled     *bool           `json:"isSettled,omitempty"`
}

// UpdateTransactionRequest carries the fields to change on a stored ledger row.
type UpdateTransactionRequest struct {
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Type          *string          `json:"type,omitempty" binding:"omitempty,oneof=ENTRADA SAIDA"`
	Category      *string          `json:"category,omitempty" binding:"omitempty,oneof=INSCRICAO CANTINA ALUGUEL_CHACARA OUTROS"`
	Date          *time.Time       `json:"date,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	IsSettled     *bool            `json:"isSettled,omitempty"`
}

// ListTransactionsParams defines the query parameters for the ledger timeline.
type ListTransactionsParams struct {
	Type           *string    `form:"type"`
	Category       *string    `form:"category"`
	From           *time.Time `form:"-"`
	To             *time.Time `form:"-"`
	IncludeVirtual bool       `form:"includeVirtual,default=true"`
	Limit          int        `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken      *string    `form:"nextToken"`
}

// TransactionResponse defines the data returned for a ledger row.
type TransactionResponse struct {
	TransactionID string             `json:"transactionID"`
	Description   string             `json:"description"`
	Amount        decimal.Decimal    `json:"amount"`
	Type          string             `json:"type"`
	Category      string             `json:"category"`
	Date          time.Time          `json:"date"`
	PaymentMethod *string            `json:"paymentMethod,omitempty"`
	ReferenceID   *string            `json:"referenceID,omitempty"`
	PersonID      *string            `json:"personID,omitempty"`
	PersonName    *string            `json:"personName,omitempty"`
	IsSettled     bool               `json:"isSettled"`
	IsVirtual     bool               `json:"isVirtual"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// ListTransactionsResponse is one page of the ledger timeline.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: t.TransactionID,
		Description:   t.Description,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Category:      string(t.Category),
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		ReferenceID:   t.ReferenceID,
		PersonID:      t.PersonID,
		PersonName:    t.PersonName,
		IsSettled:     t.IsSettled,
		IsVirtual:     t.IsVirtual,
	}
	if len(t.Items) > 0 {
		resp.Items = ToSaleItemResponses(t.Items)
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
