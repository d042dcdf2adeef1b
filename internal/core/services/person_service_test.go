package services_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

type PersonServiceTestSuite struct {
	EngineTestSuite
}

func TestPersonServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PersonServiceTestSuite))
}

func (s *PersonServiceTestSuite) TestRegisterPayment_DerivesStatus() {
	ana := s.person("Ana")
	s.Equal(domain.PaymentStatusPending, ana.PaymentStatus)

	p, err := s.svc.Person.RegisterPayment(s.ctx, ana.PersonID, dto.RegisterPaymentRequest{Amount: dec("100")}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.PaymentStatusPartial, p.PaymentStatus)
	s.True(dec("200").Equal(p.Outstanding()))
	s.Require().NotNil(p.LastPaymentDate)
	s.Equal(s.now, *p.LastPaymentDate)

	p, err = s.svc.Person.RegisterPayment(s.ctx, ana.PersonID, dto.RegisterPaymentRequest{Amount: dec("200")}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.PaymentStatusPaid, p.PaymentStatus)
	s.True(p.Outstanding().IsZero())

	_, err = s.svc.Person.RegisterPayment(s.ctx, ana.PersonID, dto.RegisterPaymentRequest{Amount: dec("0")}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.svc.Person.RegisterPayment(s.ctx, "missing", dto.RegisterPaymentRequest{Amount: dec("10")}, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PersonServiceTestSuite) TestUpdatePerson_RederivesStatus() {
	paid := dec("300")
	ana, err := s.svc.Person.CreatePerson(s.ctx, dto.CreatePersonRequest{Name: "Ana", TotalPrice: dec("300"), AmountPaid: &paid}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.PaymentStatusPaid, ana.PaymentStatus)

	updated, err := s.svc.Person.UpdatePerson(s.ctx, ana.PersonID, dto.UpdatePersonRequest{TotalPrice: ptrDec("350")}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.PaymentStatusPartial, updated.PaymentStatus)

	_, err = s.svc.Person.UpdatePerson(s.ctx, ana.PersonID, dto.UpdatePersonRequest{Name: strPtr(" ")}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PersonServiceTestSuite) TestDeletePerson_BlockedByPendingDebt() {
	soda := s.product("Refrigerante", "3", "5", 10)
	ana := s.person("Ana")
	s.sell(soda.ProductID, 2, "Pendência", &ana.PersonID)

	err := s.svc.Person.DeletePerson(s.ctx, ana.PersonID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.svc.Sale.SettleAllCustomerDebt(s.ctx, ana.PersonID, dto.SettleRequest{PaymentMethod: "Pix"}, testUser)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Person.DeletePerson(s.ctx, ana.PersonID, testUser))

	_, err = s.svc.Person.GetPerson(s.ctx, ana.PersonID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
