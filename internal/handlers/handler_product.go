package handlers

import (
	"log/slog"
	"net/http"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: productService}
}

// registerProductRoutes wires product endpoints. Catalog writes need the
// CASHIER role; deactivation is ADMIN only.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)
	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.POST("", middleware.RequireRole(domain.RoleCashier), h.createProduct)
		products.PUT("/:id", middleware.RequireRole(domain.RoleCashier), h.updateProduct)
		products.POST("/:id/stock", middleware.RequireRole(domain.RoleCashier), h.receiveStock)
		products.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deactivateProduct)
	}
}

// createProduct godoc
// @Summary      Create a product
// @Description  Adds a product to the catalog. DOSE products must declare a base unit size.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        product  body      dto.CreateProductRequest  true  "Product to create"
// @Success      201      {object}  dto.ProductResponse
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Security     BearerAuth
// @Router       /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create product request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary      Get a product by ID
// @Tags         Products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary      List products
// @Tags         Products
// @Produce      json
// @Param        limit            query     int   false  "Page size"
// @Param        offset           query     int   false  "Offset"
// @Param        includeInactive  query     bool  false  "Include deactivated products"
// @Success      200  {object}  dto.ListProductsResponse
// @Security     BearerAuth
// @Router       /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: dto.ToProductResponses(products)})
}

// updateProduct godoc
// @Summary      Update a product
// @Description  Updates catalog fields. Stock cannot be edited here; it only moves through settlement and restock.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Product ID"
// @Param        product  body      dto.UpdateProductRequest  true  "Fields to update"
// @Success      200      {object}  dto.ProductResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update product request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// receiveStock godoc
// @Summary      Receive stock for a product
// @Description  Increments stock scaled by base unit size. With a total cost, the EXPENSE ledger entry commits atomically with the increment.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "Product ID"
// @Param        restock  body      dto.ReceiveStockRequest  true  "Quantity received and optional cost"
// @Success      200      {object}  dto.ProductResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id}/stock [post]
func (h *productHandler) receiveStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid receive stock request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	product, err := h.productService.ReceiveStock(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deactivateProduct godoc
// @Summary      Deactivate a product
// @Description  Soft delete. The product stays referenced by past orders and ledger entries.
// @Tags         Products
// @Produce      json
// @Param        id   path  string  true  "Product ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
