package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	loc              *time.Location
}

// RegisterReportingRoutes registers the report routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, loc *time.Location) {
	h := &reportingHandler{reportingService: reportingService, loc: loc}

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/summary", h.getSummary)
		reportingGroup.GET("/daily-close", h.getDailyClose)
		reportingGroup.GET("/budget", h.getBudgetReport)
	}
}

// getSummary godoc
// @Summary Financial summary
// @Description Revenue, both cost of goods metrics, expenses, profit, receivables and open tabs
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger, _ := requestContext(c)
	summary, err := h.reportingService.FinancialSummary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// getDailyClose godoc
// @Summary Daily close
// @Description Canteen cash report of one calendar day
// @Tags reports
// @Produce json
// @Param date query string false "Report day" default(today)
// @Success 200 {object} dto.DailyCloseResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Security BearerAuth
// @Router /reports/daily-close [get]
func (h *reportingHandler) getDailyClose(c *gin.Context) {
	logger, _ := requestContext(c)
	day, err := parseTimeQuery(c, "date", h.loc)
	if err != nil {
		queryError(c, logger, err)
		return
	}
	if day == nil {
		now := time.Now()
		if h.loc != nil {
			now = now.In(h.loc)
		}
		day = &now
	}

	report, err := h.reportingService.DailyClose(c.Request.Context(), *day)
	if err != nil {
		respondError(c, logger, err, "Failed to generate daily close")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyCloseResponse(report))
}

// getBudgetReport godoc
// @Summary Budget vs actual
// @Tags reports
// @Produce json
// @Success 200 {object} domain.BudgetReport
// @Security BearerAuth
// @Router /reports/budget [get]
func (h *reportingHandler) getBudgetReport(c *gin.Context) {
	logger, _ := requestContext(c)
	report, err := h.reportingService.BudgetReport(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate budget report")
		return
	}
	c.JSON(http.StatusOK, report)
}
