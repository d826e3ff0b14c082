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

type orderHandler struct {
	orderService      portssvc.OrderSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

func newOrderHandler(orderService portssvc.OrderSvcFacade, settlementService portssvc.SettlementSvcFacade) *orderHandler {
	return &orderHandler{orderService: orderService, settlementService: settlementService}
}

// registerOrderRoutes wires tab endpoints. Waiters run the tab lifecycle;
// settlement takes money and therefore needs the CASHIER role.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newOrderHandler(orderService, settlementService)
	orders := rg.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.POST("", h.createOrder)
		orders.POST("/new-customer", h.createOrderForNewCustomer)
		orders.PUT("/:id/items", h.updateOrderItems)
		orders.PUT("/:id/customer", h.reassignCustomer)
		orders.DELETE("/:id", h.discardOrder)
		orders.POST("/:id/settle", middleware.RequireRole(domain.RoleCashier), h.settleOrder)
	}
}

// createOrder godoc
// @Summary      Open a tab
// @Description  Opens an empty OPEN order, optionally linked to an existing customer.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        order  body      dto.CreateOrderRequest  true  "Tab to open"
// @Success      201    {object}  dto.OrderResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create order request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// createOrderForNewCustomer godoc
// @Summary      Open a tab for a brand-new customer
// @Description  Creates the customer and the order in one atomic step; neither exists if either write fails.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CreateOrderForNewCustomerRequest  true  "New customer and tab"
// @Success      201      {object}  dto.OrderWithCustomerResponse
// @Failure      400      {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders/new-customer [post]
func (h *orderHandler) createOrderForNewCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderForNewCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create order for new customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	order, customer, err := h.orderService.CreateOrderForNewCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderWithCustomerResponse{
		Order:    dto.ToOrderResponse(order),
		Customer: dto.ToCustomerResponse(customer),
	})
}

// getOrder godoc
// @Summary      Get an order by ID
// @Tags         Orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary      List orders
// @Description  Newest first, cursor paginated. Filter by status to see only open tabs.
// @Tags         Orders
// @Produce      json
// @Param        status     query     string  false  "OPEN or CLOSED"
// @Param        limit      query     int     false  "Page size"
// @Param        nextToken  query     string  false  "Cursor from the previous page"
// @Success      200  {object}  dto.ListOrdersResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, nextToken, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	res := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		res[i] = dto.ToOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, dto.ListOrdersResponse{Orders: res, NextToken: nextToken})
}

// updateOrderItems godoc
// @Summary      Replace the items of an open tab
// @Description  Replaces the whole item list; last writer wins. Names and prices are snapshotted from the catalog.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        id     path      string                      true  "Order ID"
// @Param        items  body      dto.UpdateOrderItemsRequest true  "Full replacement item list"
// @Success      200    {object}  dto.OrderResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders/{id}/items [put]
func (h *orderHandler) updateOrderItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update order items request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrderItems(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// reassignCustomer godoc
// @Summary      Reassign an open tab to another customer
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Order ID"
// @Param        request  body      dto.ReassignCustomerRequest  true  "New customer link and display name"
// @Success      200      {object}  dto.OrderResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders/{id}/customer [put]
func (h *orderHandler) reassignCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReassignCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid reassign customer request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.ReassignCustomer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// discardOrder godoc
// @Summary      Discard an open tab
// @Description  Deletes an OPEN order with no stock or balance side effects. Closed orders are settlement history and respond not found.
// @Tags         Orders
// @Produce      json
// @Param        id   path  string  true  "Order ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *orderHandler) discardOrder(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.orderService.DiscardOrder(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// settleOrder godoc
// @Summary      Settle an open tab
// @Description  Atomically closes the order, decrements stock, applies the fiado charge when paying on credit, and appends the SALE ledger entry. For cash tenders the response echoes change due.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Order ID"
// @Param        request  body      dto.SettleOrderRequest  true  "Payment method and tender"
// @Success      200      {object}  dto.SettleOrderResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Security     BearerAuth
// @Router       /orders/{id}/settle [post]
func (h *orderHandler) settleOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SettleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid settle order request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	order, txn, changeDue, err := h.settlementService.Settle(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettleOrderResponse{
		Order:       dto.ToOrderResponse(order),
		Transaction: dto.ToTransactionResponse(txn),
		ChangeDue:   changeDue,
	})
}
