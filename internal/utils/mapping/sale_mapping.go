package mapping

import (
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
)

// ToModelSaleItems converts domain sale lines to their stored form
func ToModelSaleItems(items []domain.SaleItem) []models.SaleItem {
	ms := make([]models.SaleItem, len(items))
	for i, d := range items {
		ms[i] = models.SaleItem{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			UnitCost:    d.UnitCost,
		}
	}
	return ms
}

// ToDomainSaleItems converts stored sale lines to domain lines
func ToDomainSaleItems(items []models.SaleItem) []domain.SaleItem {
	ds := make([]domain.SaleItem, len(items))
	for i, m := range items {
		ds[i] = domain.SaleItem{
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			UnitCost:    m.UnitCost,
		}
	}
	return ds
}

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:        d.SaleID,
		Total:         d.Total,
		TotalCost:     d.TotalCost,
		SaleDate:      d.Date,
		PaymentMethod: string(d.PaymentMethod),
		PersonID:      d.PersonID,
		PersonName:    d.PersonName,
		Status:        string(d.Status),
		SettledAt:     d.SettledAt,
		AuditFields:   models.AuditFields(d.AuditFields),
		Items:         ToModelSaleItems(d.Items),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:        m.SaleID,
		Items:         ToDomainSaleItems(m.Items),
		Total:         m.Total,
		TotalCost:     m.TotalCost,
		Date:          m.SaleDate,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		PersonID:      m.PersonID,
		PersonName:    m.PersonName,
		Status:        domain.SaleStatus(m.Status),
		SettledAt:     m.SettledAt,
		AuditFields:   domain.AuditFields(m.AuditFields),
	}
}
