package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

type LedgerServiceTestSuite struct {
	EngineTestSuite
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) entry(description, amount, txnType, category string, date time.Time) *domain.Transaction {
	txn, err := s.svc.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: description,
		Amount:      dec(amount),
		Type:        txnType,
		Category:    category,
		Date:        &date,
	}, testUser)
	s.Require().NoError(err)
	return txn
}

func (s *LedgerServiceTestSuite) TestCreateTransaction_Validation() {
	_, err := s.svc.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Oferta", Amount: dec("10"), Type: "SIDEWAYS", Category: "OUTROS",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Oferta", Amount: dec("10"), Type: "ENTRADA", Category: "DOACAO",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Oferta", Amount: dec("-10"), Type: "ENTRADA", Category: "OUTROS",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestCreateTransaction_DefaultsDateToNow() {
	txn, err := s.svc.Ledger.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		Description: "Oferta", Amount: dec("10"), Type: "entrada", Category: "OUTROS",
	}, testUser)
	s.Require().NoError(err)
	s.Equal(s.now, txn.Date)
	s.Equal(domain.Entrada, txn.Type)
	s.True(txn.IsSettled)
}

func (s *LedgerServiceTestSuite) TestUpdateAndDeleteTransaction() {
	txn := s.entry("Gás", "120", "SAIDA", "OUTROS", s.now)

	amount := dec("130")
	updated, err := s.svc.Ledger.UpdateTransaction(s.ctx, txn.TransactionID, dto.UpdateTransactionRequest{
		Amount:   &amount,
		Category: strPtr("CANTINA"),
	}, testUser)
	s.Require().NoError(err)
	s.True(amount.Equal(updated.Amount))
	s.Equal(domain.CategoryCantina, updated.Category)

	s.Require().NoError(s.svc.Ledger.DeleteTransaction(s.ctx, txn.TransactionID, testUser))
	_, err = s.svc.Ledger.GetTransaction(s.ctx, txn.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.svc.Ledger.DeleteTransaction(s.ctx, txn.TransactionID, testUser), apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestVirtualRowsAreReadOnly() {
	virtualID := domain.VirtualIDPrefix + "person-1"

	_, err := s.svc.Ledger.UpdateTransaction(s.ctx, virtualID, dto.UpdateTransactionRequest{Description: strPtr("x")}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(s.svc.Ledger.DeleteTransaction(s.ctx, virtualID, testUser), apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestTimeline_MergesRegistrationRowsAndPaginates() {
	first := s.entry("Gás", "120", "SAIDA", "OUTROS", s.now.Add(-1*time.Hour))
	second := s.entry("Oferta", "50", "ENTRADA", "OUTROS", s.now.Add(-2*time.Hour))
	third := s.entry("Lenha", "80", "SAIDA", "OUTROS", s.now.Add(-3*time.Hour))

	ana := s.person("Ana")
	_, err := s.svc.Person.RegisterPayment(s.ctx, ana.PersonID, dto.RegisterPaymentRequest{Amount: dec("100")}, testUser)
	s.Require().NoError(err)
	s.person("Bruno")

	page, err := s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{IncludeVirtual: true, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page.Transactions, 2)
	s.Require().NotNil(page.NextToken)

	virtual := page.Transactions[0]
	s.Equal(domain.VirtualIDPrefix+ana.PersonID, virtual.TransactionID)
	s.True(virtual.IsVirtual)
	s.Equal("INSCRICAO", virtual.Category)
	s.True(dec("100").Equal(virtual.Amount))
	s.Equal(first.TransactionID, page.Transactions[1].TransactionID)

	next, err := s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{IncludeVirtual: true, Limit: 2, NextToken: page.NextToken})
	s.Require().NoError(err)
	s.Require().Len(next.Transactions, 2)
	s.Equal(second.TransactionID, next.Transactions[0].TransactionID)
	s.Equal(third.TransactionID, next.Transactions[1].TransactionID)
	s.Nil(next.NextToken)

	stored, err := s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Len(stored.Transactions, 3)
}

func (s *LedgerServiceTestSuite) TestTimeline_Filters() {
	s.entry("Gás", "120", "SAIDA", "OUTROS", s.now.Add(-1*time.Hour))
	s.entry("Oferta", "50", "ENTRADA", "OUTROS", s.now.Add(-26*time.Hour))
	ana := s.person("Ana")
	_, err := s.svc.Person.RegisterPayment(s.ctx, ana.PersonID, dto.RegisterPaymentRequest{Amount: dec("100")}, testUser)
	s.Require().NoError(err)

	entradas, err := s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{Type: strPtr("ENTRADA"), IncludeVirtual: true})
	s.Require().NoError(err)
	s.Len(entradas.Transactions, 2)

	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	today, err := s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{From: &from, To: &to})
	s.Require().NoError(err)
	s.Require().Len(today.Transactions, 1)
	s.Equal("Gás", today.Transactions[0].Description)

	_, err = s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{Category: strPtr("DOACAO")})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.ListTimeline(s.ctx, dto.ListTransactionsParams{NextToken: strPtr("%%%")})
	s.ErrorIs(err, apperrors.ErrValidation)
}
