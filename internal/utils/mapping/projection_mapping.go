package mapping

import (
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
)

// ToModelProjection converts a domain ProjectionItem to a model Projection
func ToModelProjection(d domain.ProjectionItem) models.Projection {
	m := models.Projection{
		ProjectionID:          d.ProjectionID,
		Label:                 d.Label,
		Amount:                d.Amount,
		IsExecuted:            d.IsExecuted,
		ExecutedTransactionID: d.ExecutedTransactionID,
		PreviousRentValue:     d.PreviousRentValue,
		ExecutedAt:            d.ExecutedAt,
		Source:                string(d.Source),
		AuditFields:           models.AuditFields(d.AuditFields),
	}
	if d.CategoryMapping != nil {
		c := string(*d.CategoryMapping)
		m.CategoryMapping = &c
	}
	return m
}

// ToDomainProjection converts a model Projection to a domain ProjectionItem
func ToDomainProjection(m models.Projection) domain.ProjectionItem {
	d := domain.ProjectionItem{
		ProjectionID:          m.ProjectionID,
		Label:                 m.Label,
		Amount:                m.Amount,
		IsExecuted:            m.IsExecuted,
		ExecutedTransactionID: m.ExecutedTransactionID,
		PreviousRentValue:     m.PreviousRentValue,
		ExecutedAt:            m.ExecutedAt,
		Source:                domain.ProjectionSource(m.Source),
		AuditFields:           domain.AuditFields(m.AuditFields),
	}
	if m.CategoryMapping != nil {
		c := domain.TransactionCategory(*m.CategoryMapping)
		d.CategoryMapping = &c
	}
	return d
}
