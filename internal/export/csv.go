// Package export renders ledger and report data as downloadable files.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
)

// CSVContentType is the media type of TransactionsCSV output.
const CSVContentType = "text/csv; charset=utf-8"

type transactionRow struct {
	Date          string `csv:"date"`
	TransactionID string `csv:"transaction_id"`
	Type          string `csv:"type"`
	Category      string `csv:"category"`
	Description   string `csv:"description"`
	Amount        string `csv:"amount"`
	SignedAmount  string `csv:"signed_amount"`
	PaymentMethod string `csv:"payment_method"`
	PersonName    string `csv:"person_name"`
	ReferenceID   string `csv:"reference_id"`
	Items         string `csv:"items"`
	Virtual       bool   `csv:"virtual"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// itemSummary flattens the item snapshot as "2x Refrigerante; 1x Pão".
func itemSummary(items []domain.SaleItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.ProductName)
	}
	return strings.Join(parts, "; ")
}

// TransactionsCSV writes one CSV row per ledger row, in the order given.
// Dates are rendered in loc; a nil loc keeps the stored zone.
func TransactionsCSV(w io.Writer, txns []domain.Transaction, loc *time.Location) error {
	rows := make([]transactionRow, len(txns))
	for i, t := range txns {
		date := t.Date
		if loc != nil {
			date = date.In(loc)
		}
		rows[i] = transactionRow{
			Date:          date.Format(time.RFC3339),
			TransactionID: t.TransactionID,
			Type:          string(t.Type),
			Category:      string(t.Category),
			Description:   t.Description,
			Amount:        t.Amount.StringFixed(2),
			SignedAmount:  t.SignedAmount().StringFixed(2),
			PaymentMethod: deref(t.PaymentMethod),
			PersonName:    deref(t.PersonName),
			ReferenceID:   deref(t.ReferenceID),
			Items:         itemSummary(t.Items),
			Virtual:       t.IsVirtual,
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write transactions csv: %w", err)
	}
	return nil
}
