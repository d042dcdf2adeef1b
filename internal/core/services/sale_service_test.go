package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

type SaleServiceTestSuite struct {
	EngineTestSuite
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

func (s *SaleServiceTestSuite) TestRegisterSale_TotalsSnapshotPrices() {
	soda := s.product("Refrigerante", "3", "5", 10)
	cake := s.product("Bolo", "1.5", "4", 10)

	sale, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: soda.ProductID, Quantity: 2},
			{ProductID: cake.ProductID, Quantity: 3},
		},
		PaymentMethod: "Dinheiro",
	}, testUser)
	s.Require().NoError(err)

	s.True(dec("22").Equal(sale.Total))
	s.True(dec("10.5").Equal(sale.TotalCost))
	s.Equal(domain.SalePaid, sale.Status)
	s.Require().NotNil(sale.SettledAt)

	price := dec("9")
	_, err = s.svc.Inventory.UpdateProduct(s.ctx, soda.ProductID, dto.UpdateProductRequest{SellPrice: &price}, testUser)
	s.Require().NoError(err)

	stored, err := s.svc.Sale.GetSale(s.ctx, sale.SaleID)
	s.Require().NoError(err)
	s.True(dec("22").Equal(stored.Total))
	s.True(dec("5").Equal(stored.Items[0].UnitPrice))
}

func (s *SaleServiceTestSuite) TestRegisterSale_PaidDecrementsStockAndBooksRevenue() {
	soda := s.product("Refrigerante", "3", "5", 10)

	sale := s.sell(soda.ProductID, 4, "Pix", nil)

	s.Equal(6, s.stockOf(soda.ProductID))
	txns := s.transactions()
	s.Require().Len(txns, 1)
	s.Equal(domain.Entrada, txns[0].Type)
	s.Equal(domain.CategoryCantina, txns[0].Category)
	s.True(dec("20").Equal(txns[0].Amount))
	s.Require().NotNil(txns[0].ReferenceID)
	s.Equal(sale.SaleID, *txns[0].ReferenceID)
	s.Require().NotNil(txns[0].PaymentMethod)
	s.Equal("Pix", *txns[0].PaymentMethod)
	s.Len(txns[0].Items, 1)
}

func (s *SaleServiceTestSuite) TestRegisterSale_PendingBooksNothing() {
	soda := s.product("Refrigerante", "3", "5", 10)
	ana := s.person("Ana")

	sale := s.sell(soda.ProductID, 2, "Pendência", &ana.PersonID)

	s.Equal(domain.SalePending, sale.Status)
	s.Nil(sale.SettledAt)
	s.Require().NotNil(sale.PersonName)
	s.Equal("Ana", *sale.PersonName)
	s.Equal(8, s.stockOf(soda.ProductID))
	s.Empty(s.transactions())
}

func (s *SaleServiceTestSuite) TestRegisterSale_PendingWithoutPersonIsRejected() {
	soda := s.product("Refrigerante", "3", "5", 10)

	_, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: soda.ProductID, Quantity: 1}},
		PaymentMethod: "Pendência",
	}, testUser)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(10, s.stockOf(soda.ProductID))
	s.Empty(s.sales())
	s.Empty(s.transactions())
}

func (s *SaleServiceTestSuite) TestRegisterSale_InsufficientStockRejectsWholeSale() {
	soda := s.product("Refrigerante", "3", "5", 10)
	cake := s.product("Bolo", "1", "4", 1)

	_, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: soda.ProductID, Quantity: 2},
			{ProductID: cake.ProductID, Quantity: 2},
		},
		PaymentMethod: "Dinheiro",
	}, testUser)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.Contains(err.Error(), "insufficient stock for Bolo")
	s.Equal(10, s.stockOf(soda.ProductID))
	s.Equal(1, s.stockOf(cake.ProductID))
	s.Empty(s.sales())
	s.Empty(s.transactions())
}

func (s *SaleServiceTestSuite) TestRegisterSale_RepeatedProductLinesShareTheStockCheck() {
	soda := s.product("Refrigerante", "3", "5", 3)

	_, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: soda.ProductID, Quantity: 2},
			{ProductID: soda.ProductID, Quantity: 2},
		},
		PaymentMethod: "Dinheiro",
	}, testUser)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal(3, s.stockOf(soda.ProductID))
}

func (s *SaleServiceTestSuite) TestRegisterSale_HugeRepeatedLinesAreRejected() {
	soda := s.product("Refrigerante", "3", "5", 3)

	_, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: soda.ProductID, Quantity: math.MaxInt},
			{ProductID: soda.ProductID, Quantity: math.MaxInt},
		},
		PaymentMethod: "Dinheiro",
	}, testUser)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(3, s.stockOf(soda.ProductID))
	s.Empty(s.sales())
	s.Empty(s.transactions())

	_, err = s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: soda.ProductID, Quantity: math.MaxInt}},
		PaymentMethod: "Dinheiro",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal(3, s.stockOf(soda.ProductID))
}

func (s *SaleServiceTestSuite) TestRegisterSale_UnknownProductOrMethod() {
	_, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "missing", Quantity: 1}},
		PaymentMethod: "Dinheiro",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)

	soda := s.product("Refrigerante", "3", "5", 3)
	_, err = s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: soda.ProductID, Quantity: 1}},
		PaymentMethod: "Cheque",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SaleServiceTestSuite) TestRegisterSale_PersistenceFailureLeavesStateUntouched() {
	soda := s.product("Refrigerante", "3", "5", 10)
	s.store.armed = true

	_, err := s.svc.Sale.RegisterSale(s.ctx, dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: soda.ProductID, Quantity: 4}},
		PaymentMethod: "Pix",
	}, testUser)

	s.ErrorIs(err, apperrors.ErrPersistence)
	s.store.armed = false
	s.Equal(10, s.stockOf(soda.ProductID))
	s.Empty(s.sales())
	s.Empty(s.transactions())
}

func (s *SaleServiceTestSuite) TestSettleSale_OnlyOnce() {
	soda := s.product("Refrigerante", "3", "5", 10)
	ana := s.person("Ana")
	sale := s.sell(soda.ProductID, 3, "Pendência", &ana.PersonID)

	txn, err := s.svc.Sale.SettleSale(s.ctx, sale.SaleID, dto.SettleRequest{PaymentMethod: "Pix"}, testUser)
	s.Require().NoError(err)
	s.True(dec("15").Equal(txn.Amount))
	s.Equal("Pagamento fiado - Ana", txn.Description)
	s.Require().NotNil(txn.ReferenceID)
	s.Equal(sale.SaleID, *txn.ReferenceID)

	stored, err := s.svc.Sale.GetSale(s.ctx, sale.SaleID)
	s.Require().NoError(err)
	s.Equal(domain.SalePaid, stored.Status)
	s.Equal(domain.PaymentPix, stored.PaymentMethod)
	s.NotNil(stored.SettledAt)

	_, err = s.svc.Sale.SettleSale(s.ctx, sale.SaleID, dto.SettleRequest{PaymentMethod: "Pix"}, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Len(s.transactions(), 1)
}

func (s *SaleServiceTestSuite) TestSettleSale_RejectsPendingAsMethod() {
	soda := s.product("Refrigerante", "3", "5", 10)
	ana := s.person("Ana")
	sale := s.sell(soda.ProductID, 1, "Pendência", &ana.PersonID)

	_, err := s.svc.Sale.SettleSale(s.ctx, sale.SaleID, dto.SettleRequest{PaymentMethod: "Pendência"}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SaleServiceTestSuite) TestSettleAllCustomerDebt_OneAggregateRow() {
	ana := s.person("Ana")
	bruno := s.person("Bruno")
	p10 := s.product("Lanche", "4", "10", 10)
	p20 := s.product("Pizza", "8", "20", 10)
	p30 := s.product("Camiseta", "15", "30", 10)

	s.sell(p10.ProductID, 1, "Pendência", &ana.PersonID)
	s.sell(p20.ProductID, 1, "Pendência", &ana.PersonID)
	s.sell(p30.ProductID, 1, "Pendência", &ana.PersonID)
	s.sell(p10.ProductID, 1, "Pendência", &bruno.PersonID)

	txn, err := s.svc.Sale.SettleAllCustomerDebt(s.ctx, ana.PersonID, dto.SettleRequest{PaymentMethod: "Dinheiro"}, testUser)
	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.True(dec("60").Equal(txn.Amount))
	s.Len(txn.Items, 3)
	s.Equal("Quitação de fiado - Ana (3 vendas)", txn.Description)
	s.Len(s.transactions(), 1)

	debts, err := s.svc.Sale.ListCustomerDebts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(debts, 1)
	s.Equal(bruno.PersonID, debts[0].PersonID)

	again, err := s.svc.Sale.SettleAllCustomerDebt(s.ctx, ana.PersonID, dto.SettleRequest{PaymentMethod: "Dinheiro"}, testUser)
	s.NoError(err)
	s.Nil(again)
}

func (s *SaleServiceTestSuite) TestListCustomerDebts_LargestFirst() {
	ana := s.person("Ana")
	bruno := s.person("Bruno")
	soda := s.product("Refrigerante", "3", "5", 20)

	s.sell(soda.ProductID, 1, "Pendência", &ana.PersonID)
	s.sell(soda.ProductID, 4, "Pendência", &bruno.PersonID)

	debts, err := s.svc.Sale.ListCustomerDebts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(debts, 2)
	s.Equal("Bruno", debts[0].PersonName)
	s.True(dec("20").Equal(debts[0].Total))
	s.Equal("Ana", debts[1].PersonName)
}

func (s *SaleServiceTestSuite) TestDeleteSale_RestocksAndKeepsLedger() {
	soda := s.product("Refrigerante", "3", "5", 10)
	sale := s.sell(soda.ProductID, 4, "Pix", nil)

	s.Require().NoError(s.svc.Sale.DeleteSale(s.ctx, sale.SaleID, testUser))

	s.Equal(10, s.stockOf(soda.ProductID))
	s.Empty(s.sales())
	s.Len(s.transactions(), 1)

	err := s.svc.Sale.DeleteSale(s.ctx, sale.SaleID, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SaleServiceTestSuite) TestListSales_Filters() {
	ana := s.person("Ana")
	soda := s.product("Refrigerante", "3", "5", 10)
	s.sell(soda.ProductID, 1, "Pendência", &ana.PersonID)
	s.sell(soda.ProductID, 1, "Pix", nil)

	pending := "pending"
	sales, err := s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{Status: &pending})
	s.Require().NoError(err)
	s.Len(sales, 1)

	bogus := "LOST"
	_, err = s.svc.Sale.ListSales(s.ctx, dto.ListSalesParams{Status: &bogus})
	s.ErrorIs(err, apperrors.ErrValidation)
}
