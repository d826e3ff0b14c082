package services

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// OrderSvcFacade manages the lifecycle of open tabs up to (but not including)
// settlement.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error)
	// CreateOrderForNewCustomer creates the customer and the order in one
	// atomic step; neither exists if either write fails.
	CreateOrderForNewCustomer(ctx context.Context, req dto.CreateOrderForNewCustomerRequest, creatorUserID string) (*domain.Order, *domain.Customer, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error)
	UpdateOrderItems(ctx context.Context, orderID string, req dto.UpdateOrderItemsRequest, userID string) (*domain.Order, error)
	ReassignCustomer(ctx context.Context, orderID string, req dto.ReassignCustomerRequest, userID string) (*domain.Order, error)
	// DiscardOrder removes an open tab with no stock or balance side effects.
	DiscardOrder(ctx context.Context, orderID string, userID string) error
}

// SettlementSvcFacade closes tabs. It is the only writer allowed to
// transition an order to CLOSED and the only sale-path mutator of
// Product.StockQty and Customer.Balance.
type SettlementSvcFacade interface {
	// Settle atomically closes the order, applies stock decrements and the
	// optional fiado charge, and appends the SALE ledger entry. Returns the
	// closed order, the ledger entry, and change due for cash tenders.
	Settle(ctx context.Context, orderID string, req dto.SettleOrderRequest, userID string) (*domain.Order, *domain.Transaction, *decimal.Decimal, error)
}
