package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// saleHandler handles HTTP requests related to canteen sales and debt.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
	loc         *time.Location
}

// RegisterSaleRoutes registers the sale and debt routes.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade, loc *time.Location) {
	h := &saleHandler{saleService: saleService, loc: loc}

	sales := rg.Group("/sales")
	{
		sales.POST("", h.registerSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.DELETE("/:saleID", h.deleteSale)
		sales.POST("/:saleID/settle", h.settleSale)
	}

	rg.GET("/debts", h.listDebts)
}

// registerSale godoc
// @Summary Register a sale
// @Description Snapshots prices, takes the units out of stock and records the sale.
// @Description A paid sale also books an ENTRADA/CANTINA row. "Pendência" requires personID.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.RegisterSaleRequest true "Cart and payment"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product or person not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) registerSale(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "RegisterSale")
		return
	}

	sale, err := h.saleService.RegisterSale(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to register sale")
		return
	}

	logger.Info("Sale registered",
		slog.String("sale_id", sale.SaleID),
		slog.String("status", string(sale.Status)),
		slog.String("total", sale.Total.String()))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Tags sales
// @Produce json
// @Param status query string false "PAID or PENDING"
// @Param personID query string false "Only this person's sales"
// @Param from query string false "Start date or timestamp (inclusive)"
// @Param to query string false "End date or timestamp (exclusive; a bare date covers the whole day)"
// @Success 200 {array} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger, _ := requestContext(c)
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "ListSales query")
		return
	}
	var err error
	if params.From, params.To, err = parseRangeQuery(c, h.loc); err != nil {
		queryError(c, logger, err)
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponses(sales))
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger, _ := requestContext(c)
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Removes the sale and puts its units back in stock. Ledger rows already booked stay.
// @Tags sales
// @Param saleID path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Sale not found"
// @Security BearerAuth
// @Router /sales/{saleID} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger, actor := requestContext(c)
	saleID := c.Param("saleID")
	if err := h.saleService.DeleteSale(c.Request.Context(), saleID, actor); err != nil {
		respondError(c, logger, err, "Failed to delete sale")
		return
	}
	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	c.Status(http.StatusNoContent)
}

// settleSale godoc
// @Summary Settle a pending sale
// @Description Marks the sale as paid and books the ENTRADA/CANTINA row for it
// @Tags sales
// @Accept json
// @Produce json
// @Param saleID path string true "Sale ID"
// @Param settlement body dto.SettleRequest true "Payment method"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid payment method"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 409 {object} map[string]string "Sale is not pending"
// @Security BearerAuth
// @Router /sales/{saleID}/settle [post]
func (h *saleHandler) settleSale(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "SettleSale")
		return
	}

	txn, err := h.saleService.SettleSale(c.Request.Context(), c.Param("saleID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to settle sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listDebts godoc
// @Summary List open tabs
// @Description Pending sales grouped by person, largest tab first
// @Tags sales
// @Produce json
// @Success 200 {array} dto.CustomerDebtResponse
// @Security BearerAuth
// @Router /debts [get]
func (h *saleHandler) listDebts(c *gin.Context) {
	logger, _ := requestContext(c)
	debts, err := h.saleService.ListCustomerDebts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list debts")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerDebtResponses(debts))
}
