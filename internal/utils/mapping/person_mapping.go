package mapping

import (
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
)

// ToModelPerson converts a domain Person to a model Person
func ToModelPerson(d domain.Person) models.Person {
	return models.Person{
		PersonID:        d.PersonID,
		Name:            d.Name,
		TotalPrice:      d.TotalPrice,
		AmountPaid:      d.AmountPaid,
		PaymentStatus:   string(d.PaymentStatus),
		LastPaymentDate: d.LastPaymentDate,
		AuditFields:     models.AuditFields(d.AuditFields),
	}
}

// ToDomainPerson converts a model Person to a domain Person
func ToDomainPerson(m models.Person) domain.Person {
	return domain.Person{
		PersonID:        m.PersonID,
		Name:            m.Name,
		TotalPrice:      m.TotalPrice,
		AmountPaid:      m.AmountPaid,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		LastPaymentDate: m.LastPaymentDate,
		AuditFields:     domain.AuditFields(m.AuditFields),
	}
}
