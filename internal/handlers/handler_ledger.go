package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// ledgerHandler handles HTTP requests related to the cash ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	loc           *time.Location
}

// RegisterLedgerRoutes registers the ledger routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, loc *time.Location) {
	h := &ledgerHandler{ledgerService: ledgerService, loc: loc}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTimeline)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Create a ledger entry
// @Description Books a manual ENTRADA or SAIDA row
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Ledger entry"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /transactions [post]
func (h *ledgerHandler) createTransaction(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreateTransaction")
		return
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}
	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTimeline godoc
// @Summary List the ledger timeline
// @Description Stored rows merged with one virtual registration row per paying person, newest first
// @Tags transactions
// @Produce json
// @Param type query string false "ENTRADA or SAIDA"
// @Param category query string false "INSCRICAO, CANTINA, ALUGUEL_CHACARA or OUTROS"
// @Param from query string false "Start date or timestamp (inclusive)"
// @Param to query string false "End date or timestamp (exclusive; a bare date covers the whole day)"
// @Param includeVirtual query bool false "Include registration rows" default(true)
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter or token"
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listTimeline(c *gin.Context) {
	logger, _ := requestContext(c)
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "ListTransactions query")
		return
	}
	var err error
	if params.From, params.To, err = parseRangeQuery(c, h.loc); err != nil {
		queryError(c, logger, err)
		return
	}

	page, err := h.ledgerService.ListTimeline(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getTransaction godoc
// @Summary Get a ledger entry
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	logger, _ := requestContext(c)
	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a ledger entry
// @Description Virtual registration rows cannot be edited
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *ledgerHandler) updateTransaction(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "UpdateTransaction")
		return
	}

	txn, err := h.ledgerService.UpdateTransaction(c.Request.Context(), c.Param("transactionID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a ledger entry
// @Description Virtual registration rows cannot be deleted
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Virtual row"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *ledgerHandler) deleteTransaction(c *gin.Context) {
	logger, actor := requestContext(c)
	transactionID := c.Param("transactionID")
	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), transactionID, actor); err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}
