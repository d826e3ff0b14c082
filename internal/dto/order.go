package dto

import (
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest opens a new tab, optionally linked to an existing customer.
type CreateOrderRequest struct {
	DisplayName string  `json:"displayName" binding:"required"`
	CustomerID  *string `json:"customerID"`
}

// CreateOrderForNewCustomerRequest opens a tab for a customer who does not
// exist yet; the customer and the order are created atomically.
type CreateOrderForNewCustomerRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Phone        string `json:"phone"`
}

// OrderItemRequest is one line in an item-list replacement.
type OrderItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// UpdateOrderItemsRequest replaces the whole item list (last writer wins).
type UpdateOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

// ReassignCustomerRequest changes the linked customer of an open tab.
type ReassignCustomerRequest struct {
	CustomerID  *string `json:"customerID"`
	DisplayName string  `json:"displayName" binding:"required"`
}

// SettleOrderRequest closes a tab. AmountTendered is only meaningful for CASH
// and is used to echo change due; FIADO requires the order to have a customer.
type SettleOrderRequest struct {
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	AmountTendered *decimal.Decimal     `json:"amountTendered"`
}

// OrderItemResponse mirrors domain.OrderItem.
type OrderItemResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse mirrors domain.Order.
type OrderResponse struct {
	OrderID     string              `json:"orderID"`
	DisplayName string              `json:"displayName"`
	CustomerID  *string             `json:"customerID"`
	Items       []OrderItemResponse `json:"items"`
	Total       decimal.Decimal     `json:"total"`
	Status      domain.OrderStatus  `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	ClosedAt    *time.Time          `json:"closedAt"`
}

// ToOrderResponse converts a domain.Order to its response DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}
	return OrderResponse{
		OrderID:     o.OrderID,
		DisplayName: o.DisplayName,
		CustomerID:  o.CustomerID,
		Items:       items,
		Total:       o.Total,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		ClosedAt:    o.ClosedAt,
	}
}

// OrderWithCustomerResponse is returned when a tab and its customer are
// created in one step.
type OrderWithCustomerResponse struct {
	Order    OrderResponse    `json:"order"`
	Customer CustomerResponse `json:"customer"`
}

// SettleOrderResponse is the outcome of a settlement.
type SettleOrderResponse struct {
	Order       OrderResponse       `json:"order"`
	Transaction TransactionResponse `json:"transaction"`
	ChangeDue   *decimal.Decimal    `json:"changeDue,omitempty"`
}

// ListOrdersParams defines query parameters for listing orders.
type ListOrdersParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=OPEN CLOSED"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}
