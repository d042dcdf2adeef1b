package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/handlers"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/middleware"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListCustomerDebts(ctx context.Context) ([]domain.CustomerDebt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerDebt), args.Error(1)
}
func (m *MockSaleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) SettleSale(ctx context.Context, saleID string, req dto.SettleRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, saleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockSaleService) SettleAllCustomerDebt(ctx context.Context, personID string, req dto.SettleRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, personID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	args := m.Called(ctx, saleID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

type SaleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSaleService *MockSaleService
	jwtSecret       string
}

func (suite *SaleHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    "manancial-finance",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, "manancial-finance"))

	suite.mockSaleService = new(MockSaleService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterSaleRoutes(v1, suite.mockSaleService, time.UTC)
	handlers.RegisterPersonRoutes(v1, nil, suite.mockSaleService)
}

func (suite *SaleHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("cashier-1"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SaleHandlerTestSuite) TestRegisterSale_Success() {
	req := dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2}},
		PaymentMethod: "Pix",
	}
	sale := &domain.Sale{
		SaleID: "sale-1",
		Items: []domain.SaleItem{
			{ProductID: "prod-1", ProductName: "Refrigerante", Quantity: 2, UnitPrice: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(3)},
		},
		Total:         decimal.NewFromInt(10),
		TotalCost:     decimal.NewFromInt(6),
		PaymentMethod: domain.PaymentPix,
		Status:        domain.SalePaid,
	}
	suite.mockSaleService.On("RegisterSale", mock.Anything, req, "cashier-1").Return(sale, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("sale-1", resp.SaleID)
	suite.True(decimal.NewFromInt(10).Equal(resp.Total))
	suite.Require().Len(resp.Items, 1)
	suite.True(decimal.NewFromInt(10).Equal(resp.Items[0].Subtotal))
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestRegisterSale_InsufficientStockIsConflict() {
	req := dto.RegisterSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 99}},
		PaymentMethod: "Dinheiro",
	}
	suite.mockSaleService.On("RegisterSale", mock.Anything, req, "cashier-1").
		Return(nil, fmt.Errorf("%w: insufficient stock for Refrigerante: requested 99, available 3", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "insufficient stock")
}

func (suite *SaleHandlerTestSuite) TestRegisterSale_InvalidBodyNeverReachesService() {
	w := suite.do(http.MethodPost, "/api/v1/sales", map[string]any{"paymentMethod": "Pix", "items": []any{}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "RegisterSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestSettleSale_AlreadyPaid() {
	req := dto.SettleRequest{PaymentMethod: "Pix"}
	suite.mockSaleService.On("SettleSale", mock.Anything, "sale-1", req, "cashier-1").
		Return(nil, fmt.Errorf("%w: sale sale-1 is not pending", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales/sale-1/settle", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SaleHandlerTestSuite) TestSettleDebt_NothingPending() {
	req := dto.SettleRequest{PaymentMethod: "Dinheiro"}
	suite.mockSaleService.On("SettleAllCustomerDebt", mock.Anything, "person-1", req, "cashier-1").Return(nil, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/people/person-1/settle-debt", req)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *SaleHandlerTestSuite) TestListSales_ParsesDateRange() {
	from := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	status := "PENDING"
	suite.mockSaleService.On("ListSales", mock.Anything, dto.ListSalesParams{Status: &status, From: &from, To: &to}).
		Return([]domain.Sale{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/sales?status=PENDING&from=2026-01-10&to=2026-01-11", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestListSales_RejectsBadDate() {
	w := suite.do(http.MethodGet, "/api/v1/sales?from=not-a-date", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "ListSales", mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestStorageFailureHidesCause() {
	suite.mockSaleService.On("ListCustomerDebts", mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query sales", fmt.Errorf("dial tcp 10.0.0.1:5432"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/debts", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "10.0.0.1")
}

func (suite *SaleHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/debts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "ListCustomerDebts", mock.Anything)
}

func TestSaleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
