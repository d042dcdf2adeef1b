package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/export"
)

// exportHandler serves file downloads of the ledger and the reports.
type exportHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingService
	loc              *time.Location
}

// RegisterExportRoutes registers the download routes.
func RegisterExportRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reportingService portssvc.ReportingService, loc *time.Location) {
	h := &exportHandler{ledgerService: ledgerService, reportingService: reportingService, loc: loc}

	exports := rg.Group("/exports")
	{
		exports.GET("/transactions.csv", h.exportTransactions)
		exports.GET("/summary.xlsx", h.exportSummary)
	}
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
}

// exportTransactions godoc
// @Summary Export the ledger as CSV
// @Description Stored ledger rows, newest first
// @Tags exports
// @Produce text/csv
// @Param type query string false "ENTRADA or SAIDA"
// @Param category query string false "INSCRICAO, CANTINA, ALUGUEL_CHACARA or OUTROS"
// @Param from query string false "Start date or timestamp (inclusive)"
// @Param to query string false "End date or timestamp (exclusive; a bare date covers the whole day)"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /exports/transactions.csv [get]
func (h *exportHandler) exportTransactions(c *gin.Context) {
	logger, _ := requestContext(c)

	var filter domain.TransactionFilter
	var err error
	if filter.From, filter.To, err = parseRangeQuery(c, h.loc); err != nil {
		queryError(c, logger, err)
		return
	}
	if raw := c.Query("type"); raw != "" {
		t := domain.TransactionType(strings.ToUpper(raw))
		if t != domain.Entrada && t != domain.Saida {
			queryError(c, logger, fmt.Errorf("%w type=%q", errBadQuery, raw))
			return
		}
		filter.Type = &t
	}
	if raw := c.Query("category"); raw != "" {
		cat := domain.TransactionCategory(strings.ToUpper(raw))
		if !cat.IsValid() {
			queryError(c, logger, fmt.Errorf("%w category=%q", errBadQuery, raw))
			return
		}
		filter.Category = &cat
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	var buf bytes.Buffer
	if err := export.TransactionsCSV(&buf, txns, h.loc); err != nil {
		respondError(c, logger, err, "Failed to export transactions")
		return
	}
	logger.Info("Transactions exported", slog.Int("rows", len(txns)))
	attachment(c, "transactions.csv")
	c.Data(http.StatusOK, export.CSVContentType, buf.Bytes())
}

// exportSummary godoc
// @Summary Export the financial summary as a workbook
// @Description Summary, open tabs and budget-vs-actual sheets
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /exports/summary.xlsx [get]
func (h *exportHandler) exportSummary(c *gin.Context) {
	logger, _ := requestContext(c)
	ctx := c.Request.Context()

	summary, err := h.reportingService.FinancialSummary(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	budget, err := h.reportingService.BudgetReport(ctx)
	if err != nil {
		respondError(c, logger, err, "Failed to generate budget report")
		return
	}

	var buf bytes.Buffer
	if err := export.SummaryXLSX(&buf, summary, budget); err != nil {
		respondError(c, logger, err, "Failed to export summary")
		return
	}
	attachment(c, "summary.xlsx")
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}
