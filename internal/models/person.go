package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person is a row of the people table.
type Person struct {
	PersonID        string          `db:"person_id"`
	Name            string          `db:"name"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	PaymentStatus   string          `db:"payment_status"`
	LastPaymentDate *time.Time      `db:"last_payment_date"`
	AuditFields
}
