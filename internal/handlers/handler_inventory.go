package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/services"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/dto"
)

// inventoryHandler handles HTTP requests related to canteen products.
type inventoryHandler struct {
	inventoryService  portssvc.InventorySvcFacade
	projectionService portssvc.ProjectionSvcFacade
}

// RegisterInventoryRoutes registers the product catalogue and stock routes.
func RegisterInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade, projectionService portssvc.ProjectionSvcFacade) {
	h := &inventoryHandler{inventoryService: inventoryService, projectionService: projectionService}

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.archiveProduct)
		products.POST("/:productID/stock-adjustments", h.adjustStock)
		products.POST("/:productID/replenishments", h.replenishStock)
	}

	inventory := rg.Group("/inventory")
	{
		inventory.GET("/low-stock", h.listLowStock)
		inventory.POST("/stock-cost", h.registerStockCost)
	}
}

// createProduct godoc
// @Summary Create a product
// @Description Registers a canteen product with its prices and opening stock
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Security BearerAuth
// @Router /products [post]
func (h *inventoryHandler) createProduct(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreateProduct")
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param includeArchived query bool false "Include archived products"
// @Success 200 {array} dto.ProductResponse
// @Failure 500 {object} map[string]string "Failed to list products"
// @Security BearerAuth
// @Router /products [get]
func (h *inventoryHandler) listProducts(c *gin.Context) {
	logger, _ := requestContext(c)
	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("includeArchived", "false"))

	products, err := h.inventoryService.ListProducts(c.Request.Context(), includeArchived)
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *inventoryHandler) getProduct(c *gin.Context) {
	logger, _ := requestContext(c)
	product, err := h.inventoryService.GetProduct(c.Request.Context(), c.Param("productID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Description Changes name, category, prices or reorder level. Stock is not editable here.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{productID} [put]
func (h *inventoryHandler) updateProduct(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "UpdateProduct")
		return
	}

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), c.Param("productID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// archiveProduct godoc
// @Summary Archive a product
// @Description Hides the product from the catalogue. Refused while a pending sale references it.
// @Tags products
// @Param productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Pending debt references the product"
// @Security BearerAuth
// @Router /products/{productID} [delete]
func (h *inventoryHandler) archiveProduct(c *gin.Context) {
	logger, actor := requestContext(c)
	productID := c.Param("productID")
	if err := h.inventoryService.ArchiveProduct(c.Request.Context(), productID, actor); err != nil {
		respondError(c, logger, err, "Failed to archive product")
		return
	}
	logger.Info("Product archived", slog.String("product_id", productID))
	c.Status(http.StatusNoContent)
}

// adjustStock godoc
// @Summary Adjust stock
// @Description Adds a positive or negative correction to the stock on hand
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param adjustment body dto.AdjustStockRequest true "Stock delta"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Stock would become negative"
// @Security BearerAuth
// @Router /products/{productID}/stock-adjustments [post]
func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "AdjustStock")
		return
	}

	product, err := h.inventoryService.AdjustStock(c.Request.Context(), c.Param("productID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// replenishStock godoc
// @Summary Replenish stock
// @Description Adds bought units, books the SAIDA/CANTINA row paying for them and an executed MOVEMENT projection
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param replenishment body dto.ReplenishStockRequest true "Purchase details"
// @Success 201 {object} dto.ReplenishmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{productID}/replenishments [post]
func (h *inventoryHandler) replenishStock(c *gin.Context) {
	logger, actor := requestContext(c)
	var req dto.ReplenishStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "ReplenishStock")
		return
	}

	result, err := h.inventoryService.ReplenishStock(c.Request.Context(), c.Param("productID"), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to replenish stock")
		return
	}
	logger.Info("Stock replenished",
		slog.String("product_id", result.Product.ProductID),
		slog.Int("quantity", req.Quantity),
		slog.String("transaction_id", result.Transaction.TransactionID))
	c.JSON(http.StatusCreated, dto.ToReplenishmentResponse(result))
}

// listLowStock godoc
// @Summary List low stock products
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *inventoryHandler) listLowStock(c *gin.Context) {
	logger, _ := requestContext(c)
	products, err := h.inventoryService.ListLowStock(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list low stock products")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// registerStockCost godoc
// @Summary Book the current stock cost
// @Description Records the cost of every unit on hand as one SAIDA/CANTINA row and an executed STOCK projection
// @Tags inventory
// @Produce json
// @Success 201 {object} dto.ProjectionResponse
// @Failure 400 {object} map[string]string "Nothing in stock"
// @Security BearerAuth
// @Router /inventory/stock-cost [post]
func (h *inventoryHandler) registerStockCost(c *gin.Context) {
	logger, actor := requestContext(c)
	projection, err := h.projectionService.RegisterCurrentStockCost(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to register stock cost")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectionResponse(projection))
}
