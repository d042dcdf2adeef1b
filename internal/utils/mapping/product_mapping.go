package mapping

import (
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		Category:    d.Category,
		CostPrice:   d.CostPrice,
		SellPrice:   d.SellPrice,
		Stock:       d.Stock,
		MinStock:    d.MinStock,
		IsArchived:  d.IsArchived,
		AuditFields: models.AuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		Category:    m.Category,
		CostPrice:   m.CostPrice,
		SellPrice:   m.SellPrice,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		IsArchived:  m.IsArchived,
		AuditFields: domain.AuditFields(m.AuditFields),
	}
}
