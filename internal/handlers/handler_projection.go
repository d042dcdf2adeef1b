package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// projectionHandler handles HTTP requests related to expense projections and the budget row.
type projectionHandler struct {
	projectionService portssvc.ProjectionSvcFacade
}

// RegisterProjectionRoutes registers the projection and budget routes.
func RegisterProjectionRoutes(rg *gin.RouterGroup, projectionService portssvc.ProjectionSvcFacade) {
	h := &projectionHandler{projectionService: projectionService}

	projections := rg.Group("/projections")
	{
		projections.POST("", h.createProjection)
		projections.GET("", h.listProjections)
		projections.GET("/:projectionID", h.getProjection)
		projections.PUT("/:projectionID", h.updateProjection)
		projections.DELETE("/:projectionID", h.deleteProjection)
		projections.POST("/:projectionID/execute", h.executeProjection)
		projections.POST("/:projectionID/undo", h.undoExecution)
	}

	budget := rg.Group("/budget")
	{
		budget.GET("", h.getBudget)
		budget.PUT("", h.updateBudget)
	}
}

// createProjection godoc
// @Summary Create a projection
// @Tags projections
// @Accept json
// @Produce json
// @Param projection body dto.CreateProjectionRequest true "Planned line"
// @Success 201 {object} dto.ProjectionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /projections [post]
func (h *projectionHandler) createProjection(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.CreateProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreateProjection")
		return
	}

	projection, err := h.projectionService.CreateProjection(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create projection")
		return
	}
	logger.Info("Projection created", slog.String("projection_id", projection.ProjectionID))
	c.JSON(http.StatusCreated, dto.ToProjectionResponse(projection))
}

// listProjections godoc
// @Summary List projections
// @Tags projections
// @Produce json
// @Success 200 {array} dto.ProjectionResponse
// @Security BearerAuth
// @Router /projections [get]
func (h *projectionHandler) listProjections(c *gin.Context) {
	logger, _ := requestContext(c)
	projections, err := h.projectionService.ListProjections(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list projections")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectionResponses(projections))
}

// getProjection godoc
// @Summary Get a projection
// @Tags projections
// @Produce json
// @Param projectionID path string true "Projection ID"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 404 {object} map[string]string "Projection not found"
// @Security BearerAuth
// @Router /projections/{projectionID} [get]
func (h *projectionHandler) getProjection(c *gin.Context) {
	logger, _ := requestContext(c)
	projection, err := h.projectionService.GetProjection(c.Request.Context(), c.Param("projectionID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve projection")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectionResponse(projection))
}

// updateProjection godoc
// @Summary Update a planned projection
// @Tags projections
// @Accept json
// @Produce json
// @Param projectionID path string true "Projection ID"
// @Param projection body dto.UpdateProjectionRequest true "Fields to change"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 404 {object} map[string]string "Projection not found"
// @Failure 409 {object} map[string]string "Projection already executed"
// @Security BearerAuth
// @Router /projections/{projectionID} [put]
func (h *projectionHandler) updateProjection(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.UpdateProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "UpdateProjection")
		return
	}

	projection, err := h.projectionService.UpdateProjection(c.Request.Context(), c.Param("projectionID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update projection")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectionResponse(projection))
}

// deleteProjection godoc
// @Summary Delete a planned projection
// @Tags projections
// @Param projectionID path string true "Projection ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Projection not found"
// @Failure 409 {object} map[string]string "Projection already executed"
// @Security BearerAuth
// @Router /projections/{projectionID} [delete]
func (h *projectionHandler) deleteProjection(c *gin.Context) {
	logger, actor := requestContext(c)
	projectionID := c.Param("projectionID")
	if err := h.projectionService.DeleteProjection(c.Request.Context(), projectionID, actor); err != nil {
		respondError(c, logger, err, "Failed to delete projection")
		return
	}
	c.Status(http.StatusNoContent)
}

// executeProjection godoc
// @Summary Review and execute a projection
// @Description Rent lines update the rent baseline; every other line books a SAIDA row
// @Tags projections
// @Accept json
// @Produce json
// @Param projectionID path string true "Projection ID"
// @Param execution body dto.ExecuteProjectionRequest true "Reviewed expense"
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Projection not found"
// @Failure 409 {object} map[string]string "Projection already executed"
// @Security BearerAuth
// @Router /projections/{projectionID}/execute [post]
func (h *projectionHandler) executeProjection(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.ExecuteProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "ExecuteProjection")
		return
	}

	projection, err := h.projectionService.ReviewAndExecute(c.Request.Context(), c.Param("projectionID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to execute projection")
		return
	}
	logger.Info("Projection executed", slog.String("projection_id", projection.ProjectionID), slog.String("amount", projection.Amount.String()))
	c.JSON(http.StatusOK, dto.ToProjectionResponse(projection))
}

// undoExecution godoc
// @Summary Undo a projection execution
// @Description Reverts the execution. Stock and movement rows are removed together with their ledger row.
// @Tags projections
// @Produce json
// @Param projectionID path string true "Projection ID"
// @Success 200 {object} dto.UndoExecutionResponse
// @Failure 404 {object} map[string]string "Projection not found"
// @Failure 409 {object} map[string]string "Replenished units were already sold"
// @Security BearerAuth
// @Router /projections/{projectionID}/undo [post]
func (h *projectionHandler) undoExecution(c *gin.Context) {
	logger, actor := requestContext(c)
	projection, err := h.projectionService.UndoExecution(c.Request.Context(), c.Param("projectionID"), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to undo execution")
		return
	}

	resp := dto.UndoExecutionResponse{Deleted: projection == nil}
	if projection != nil {
		p := dto.ToProjectionResponse(projection)
		resp.Projection = &p
	}
	c.JSON(http.StatusOK, resp)
}

// getBudget godoc
// @Summary Get the budget settings
// @Tags budget
// @Produce json
// @Success 200 {object} dto.BudgetSettingsResponse
// @Security BearerAuth
// @Router /budget [get]
func (h *projectionHandler) getBudget(c *gin.Context) {
	logger, _ := requestContext(c)
	settings, err := h.projectionService.GetBudgetSettings(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load budget settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetSettingsResponse(settings))
}

// updateBudget godoc
// @Summary Set the rent baseline
// @Tags budget
// @Accept json
// @Produce json
// @Param settings body dto.UpdateBudgetSettingsRequest true "Rent baseline"
// @Success 200 {object} dto.BudgetSettingsResponse
// @Failure 400 {object} map[string]string "Negative rent"
// @Security BearerAuth
// @Router /budget [put]
func (h *projectionHandler) updateBudget(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.UpdateBudgetSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "UpdateBudgetSettings")
		return
	}

	settings, err := h.projectionService.UpdateFixedCostRent(c.Request.Context(), req.FixedCostRent, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update budget settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetSettingsResponse(settings))
}
