package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the ledger table. Items are a JSONB snapshot.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Category      string          `db:"category"`
	TxnDate       time.Time       `db:"txn_date"`
	PaymentMethod *string         `db:"payment_method"`
	ReferenceID   *string         `db:"reference_id"`
	PersonID      *string         `db:"person_id"`
	PersonName    *string         `db:"person_name"`
	IsSettled     bool            `db:"is_settled"`
	Items         []SaleItem      `db:"items"`
	AuditFields
}
