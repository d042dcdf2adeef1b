package mapping

import (
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Virtual rows are never stored, so IsVirtual has no column.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Description:   d.Description,
		Amount:        d.Amount,
		Type:          string(d.Type),
		Category:      string(d.Category),
		TxnDate:       d.Date,
		PaymentMethod: d.PaymentMethod,
		ReferenceID:   d.ReferenceID,
		PersonID:      d.PersonID,
		PersonName:    d.PersonName,
		IsSettled:     d.IsSettled,
		Items:         ToModelSaleItems(d.Items),
		AuditFields:   models.AuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Description:   m.Description,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Category:      domain.TransactionCategory(m.Category),
		Date:          m.TxnDate,
		PaymentMethod: m.PaymentMethod,
		ReferenceID:   m.ReferenceID,
		PersonID:      m.PersonID,
		PersonName:    m.PersonName,
		IsSettled:     m.IsSettled,
		AuditFields:   domain.AuditFields(m.AuditFields),
	}
	if len(m.Items) > 0 {
		d.Items = ToDomainSaleItems(m.Items)
	}
	return d
}
