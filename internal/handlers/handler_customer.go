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

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

// registerCustomerRoutes wires customer endpoints. Payments need the CASHIER
// role; deactivation is ADMIN only.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)
	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.POST("", h.createCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.POST("/:id/payments", middleware.RequireRole(domain.RoleCashier), h.receivePayment)
		customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deactivateCustomer)
	}
}

// createCustomer godoc
// @Summary      Create a customer
// @Description  Registers a fiado customer. Balance always starts at zero.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        customer  body      dto.CreateCustomerRequest  true  "Customer to create"
// @Success      201       {object}  dto.CustomerResponse
// @Failure      400       {object}  map[string]string
// @Security     BearerAuth
// @Router       /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary      Get a customer by ID
// @Tags         Customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary      List customers
// @Description  With debtorsOnly=true, returns only customers with a positive balance, highest debt first.
// @Tags         Customers
// @Produce      json
// @Param        limit            query     int   false  "Page size"
// @Param        offset           query     int   false  "Offset"
// @Param        includeInactive  query     bool  false  "Include deactivated customers"
// @Param        debtorsOnly      query     bool  false  "Only customers with outstanding debt"
// @Success      200  {object}  dto.ListCustomersResponse
// @Security     BearerAuth
// @Router       /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListCustomersResponse{Customers: dto.ToCustomerResponses(customers)})
}

// updateCustomer godoc
// @Summary      Update a customer
// @Description  Updates contact details and credit limit. Balance cannot be edited here.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        id        path      string                     true  "Customer ID"
// @Param        customer  body      dto.UpdateCustomerRequest  true  "Fields to update"
// @Success      200       {object}  dto.CustomerResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// receivePayment godoc
// @Summary      Record a payment against fiado debt
// @Description  Decrements the balance and appends a PAYMENT ledger entry atomically. The amount cannot exceed the outstanding balance.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Customer ID"
// @Param        payment  body      dto.ReceivePaymentRequest  true  "Amount and method"
// @Success      201      {object}  dto.TransactionResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /customers/{id}/payments [post]
func (h *customerHandler) receivePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReceivePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid receive payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.customerService.ReceivePayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// deactivateCustomer godoc
// @Summary      Deactivate a customer
// @Description  Soft delete. Fails while the customer still owes money.
// @Tags         Customers
// @Produce      json
// @Param        id   path  string  true  "Customer ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *customerHandler) deactivateCustomer(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
