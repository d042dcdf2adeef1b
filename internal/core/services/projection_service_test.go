package services_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

type ProjectionServiceTestSuite struct {
	EngineTestSuite
}

func TestProjectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectionServiceTestSuite))
}

func strPtr(s string) *string { return &s }

func (s *ProjectionServiceTestSuite) projection(label, amount string, mapping *string) *domain.ProjectionItem {
	p, err := s.svc.Projection.CreateProjection(s.ctx, dto.CreateProjectionRequest{
		Label:           label,
		Amount:          dec(amount),
		CategoryMapping: mapping,
	}, testUser)
	s.Require().NoError(err)
	return p
}

func (s *ProjectionServiceTestSuite) rent() string {
	settings, err := s.svc.Projection.GetBudgetSettings(s.ctx)
	s.Require().NoError(err)
	return settings.FixedCostRent.String()
}

func (s *ProjectionServiceTestSuite) TestRentExecution_RoundTrip() {
	_, err := s.svc.Projection.UpdateFixedCostRent(s.ctx, dec("10000"), testUser)
	s.Require().NoError(err)
	p := s.projection("Aluguel da chácara", "12000", strPtr("ALUGUEL_CHACARA"))

	executed, err := s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{Amount: dec("12500")}, testUser)
	s.Require().NoError(err)
	s.True(executed.IsExecuted)
	s.Nil(executed.ExecutedTransactionID)
	s.Require().NotNil(executed.PreviousRentValue)
	s.True(dec("10000").Equal(*executed.PreviousRentValue))
	s.Equal("12500", s.rent())
	s.Empty(s.transactions())

	undone, err := s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.Require().NoError(err)
	s.Require().NotNil(undone)
	s.False(undone.IsExecuted)
	s.Nil(undone.PreviousRentValue)
	s.Equal("10000", s.rent())

	again, err := s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.Require().NoError(err)
	s.Require().NotNil(again)
	s.False(again.IsExecuted)
	s.Equal("10000", s.rent())
}

func (s *ProjectionServiceTestSuite) TestCategoryOverrideToRentUpdatesBaseline() {
	p := s.projection("Chácara", "9000", nil)

	_, err := s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{
		Amount:   dec("9500"),
		Category: strPtr("ALUGUEL_CHACARA"),
	}, testUser)
	s.Require().NoError(err)

	s.Equal("9500", s.rent())
	s.Empty(s.transactions())
}

func (s *ProjectionServiceTestSuite) TestLedgerExecution_RoundTrip() {
	p := s.projection("Som e iluminação", "800", nil)

	executed, err := s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{
		Amount:        dec("750"),
		PaymentMethod: strPtr("Pix"),
	}, testUser)
	s.Require().NoError(err)
	s.True(executed.IsExecuted)
	s.True(dec("750").Equal(executed.Amount))
	s.Require().NotNil(executed.ExecutedTransactionID)

	txns := s.transactions()
	s.Require().Len(txns, 1)
	s.Equal(*executed.ExecutedTransactionID, txns[0].TransactionID)
	s.Equal(domain.Saida, txns[0].Type)
	s.Equal(domain.CategoryOutros, txns[0].Category)
	s.Equal("Som e iluminação", txns[0].Description)
	s.Require().NotNil(txns[0].ReferenceID)
	s.Equal(p.ProjectionID, *txns[0].ReferenceID)

	_, err = s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{Amount: dec("750")}, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
	_, err = s.svc.Projection.UpdateProjection(s.ctx, p.ProjectionID, dto.UpdateProjectionRequest{Label: strPtr("x")}, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.ErrorIs(s.svc.Projection.DeleteProjection(s.ctx, p.ProjectionID, testUser), apperrors.ErrConflict)

	undone, err := s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.Require().NoError(err)
	s.Require().NotNil(undone)
	s.False(undone.IsExecuted)
	s.Nil(undone.ExecutedTransactionID)
	s.Empty(s.transactions())

	again, err := s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.Require().NoError(err)
	s.False(again.IsExecuted)

	s.NoError(s.svc.Projection.DeleteProjection(s.ctx, p.ProjectionID, testUser))
}

func (s *ProjectionServiceTestSuite) TestUndo_ToleratesTransactionRemovedByHand() {
	p := s.projection("Material", "100", strPtr("OUTROS"))
	executed, err := s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{Amount: dec("100")}, testUser)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Ledger.DeleteTransaction(s.ctx, *executed.ExecutedTransactionID, testUser))

	undone, err := s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.Require().NoError(err)
	s.False(undone.IsExecuted)
}

func (s *ProjectionServiceTestSuite) TestExecute_Validation() {
	p := s.projection("Material", "100", nil)

	_, err := s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{Amount: dec("-1")}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{
		Amount:        dec("10"),
		PaymentMethod: strPtr("Pendência"),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Projection.ReviewAndExecute(s.ctx, "missing", dto.ExecuteProjectionRequest{Amount: dec("10")}, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Projection.UpdateFixedCostRent(s.ctx, dec("-5"), testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProjectionServiceTestSuite) TestExecute_PersistenceFailureKeepsProjectionPlanned() {
	p := s.projection("Material", "100", nil)
	s.store.armed = true

	_, err := s.svc.Projection.ReviewAndExecute(s.ctx, p.ProjectionID, dto.ExecuteProjectionRequest{Amount: dec("100")}, testUser)

	s.ErrorIs(err, apperrors.ErrPersistence)
	s.store.armed = false
	stored, err := s.svc.Projection.GetProjection(s.ctx, p.ProjectionID)
	s.Require().NoError(err)
	s.False(stored.IsExecuted)
	s.Empty(s.transactions())
}

func (s *ProjectionServiceTestSuite) TestRegisterCurrentStockCost_AndUndo() {
	s.product("Refrigerante", "3", "5", 4)
	s.product("Pão", "1.5", "3", 2)
	s.product("Vazio", "9", "10", 0)

	p, err := s.svc.Projection.RegisterCurrentStockCost(s.ctx, testUser)
	s.Require().NoError(err)
	s.Equal(domain.SourceStock, p.Source)
	s.True(p.IsExecuted)
	s.True(dec("15").Equal(p.Amount))
	s.Equal("Estoque atual (10/01/2026)", p.Label)

	txns := s.transactions()
	s.Require().Len(txns, 1)
	s.Equal(domain.Saida, txns[0].Type)
	s.Equal(domain.CategoryCantina, txns[0].Category)
	s.Len(txns[0].Items, 2)
	s.Require().NotNil(txns[0].ReferenceID)
	s.Equal(p.ProjectionID, *txns[0].ReferenceID)

	undone, err := s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.Require().NoError(err)
	s.Nil(undone)
	s.Empty(s.transactions())

	_, err = s.svc.Projection.GetProjection(s.ctx, p.ProjectionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Projection.UndoExecution(s.ctx, p.ProjectionID, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ProjectionServiceTestSuite) TestRegisterCurrentStockCost_NoStock() {
	s.product("Vazio", "9", "10", 0)

	_, err := s.svc.Projection.RegisterCurrentStockCost(s.ctx, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProjectionServiceTestSuite) TestMovementUndo_TakesUnitsBackOut() {
	water := s.product("Água", "2", "4", 2)

	rep, err := s.svc.Inventory.ReplenishStock(s.ctx, water.ProductID, dto.ReplenishStockRequest{Quantity: 6, UnitCost: ptrDec("2.5")}, testUser)
	s.Require().NoError(err)
	s.Equal(8, s.stockOf(water.ProductID))

	undone, err := s.svc.Projection.UndoExecution(s.ctx, rep.Projection.ProjectionID, testUser)
	s.Require().NoError(err)
	s.Nil(undone)
	s.Equal(2, s.stockOf(water.ProductID))
	s.Empty(s.transactions())
}

func (s *ProjectionServiceTestSuite) TestMovementUndo_RefusedOnceUnitsAreSold() {
	water := s.product("Água", "2", "4", 0)
	rep, err := s.svc.Inventory.ReplenishStock(s.ctx, water.ProductID, dto.ReplenishStockRequest{Quantity: 6}, testUser)
	s.Require().NoError(err)
	s.sell(water.ProductID, 4, "Dinheiro", nil)

	_, err = s.svc.Projection.UndoExecution(s.ctx, rep.Projection.ProjectionID, testUser)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal(2, s.stockOf(water.ProductID))
	s.Len(s.transactions(), 2)
	stored, err := s.svc.Projection.GetProjection(s.ctx, rep.Projection.ProjectionID)
	s.Require().NoError(err)
	s.True(stored.IsExecuted)
}
