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

type supplierHandler struct {
	supplierService portssvc.SupplierSvcFacade
}

func newSupplierHandler(supplierService portssvc.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{supplierService: supplierService}
}

func registerSupplierRoutes(rg *gin.RouterGroup, supplierService portssvc.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)
	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.POST("", middleware.RequireRole(domain.RoleCashier), h.createSupplier)
		suppliers.PUT("/:id", middleware.RequireRole(domain.RoleCashier), h.updateSupplier)
		suppliers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deactivateSupplier)
	}
}

// createSupplier godoc
// @Summary      Create a supplier
// @Tags         Suppliers
// @Accept       json
// @Produce      json
// @Param        supplier  body      dto.CreateSupplierRequest  true  "Supplier to create"
// @Success      201       {object}  dto.SupplierResponse
// @Failure      400       {object}  map[string]string
// @Security     BearerAuth
// @Router       /suppliers [post]
func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create supplier request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

// getSupplier godoc
// @Summary      Get a supplier by ID
// @Tags         Suppliers
// @Produce      json
// @Param        id   path      string  true  "Supplier ID"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /suppliers/{id} [get]
func (h *supplierHandler) getSupplier(c *gin.Context) {
	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// listSuppliers godoc
// @Summary      List suppliers
// @Tags         Suppliers
// @Produce      json
// @Param        limit            query     int   false  "Page size"
// @Param        offset           query     int   false  "Offset"
// @Param        includeInactive  query     bool  false  "Include deactivated suppliers"
// @Success      200  {object}  dto.ListSuppliersResponse
// @Security     BearerAuth
// @Router       /suppliers [get]
func (h *supplierHandler) listSuppliers(c *gin.Context) {
	var params dto.ListSuppliersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	res := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		res[i] = dto.ToSupplierResponse(&suppliers[i])
	}
	c.JSON(http.StatusOK, dto.ListSuppliersResponse{Suppliers: res})
}

// updateSupplier godoc
// @Summary      Update a supplier
// @Tags         Suppliers
// @Accept       json
// @Produce      json
// @Param        id        path      string                     true  "Supplier ID"
// @Param        supplier  body      dto.UpdateSupplierRequest  true  "Fields to update"
// @Success      200       {object}  dto.SupplierResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Security     BearerAuth
// @Router       /suppliers/{id} [put]
func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update supplier request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

// deactivateSupplier godoc
// @Summary      Deactivate a supplier
// @Tags         Suppliers
// @Produce      json
// @Param        id   path  string  true  "Supplier ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /suppliers/{id} [delete]
func (h *supplierHandler) deactivateSupplier(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.supplierService.DeactivateSupplier(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
