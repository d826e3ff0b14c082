package repositories

import (
	"context"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerCharge is the fiado side effect of a credit settlement: add Amount
// to the customer's balance, re-checking the credit limit under the row lock.
type CustomerCharge struct {
	CustomerID string
	Amount     decimal.Decimal
}

// OrderRepositoryFacade persists open tabs and performs the multi-entity
// settlement commit.
type OrderRepositoryFacade interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	// SaveOrderWithCustomer atomically creates a new customer and an order
	// referencing it; either both rows exist afterwards or neither does.
	SaveOrderWithCustomer(ctx context.Context, order domain.Order, customer domain.Customer) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus, limit int, nextToken *string) ([]domain.Order, *string, error)
	// ReplaceOrderItems swaps the item list and the recomputed total; the
	// update is guarded on status = OPEN.
	ReplaceOrderItems(ctx context.Context, order domain.Order) error
	UpdateOrderCustomer(ctx context.Context, orderID string, customerID *string, displayName string, updatedBy string, updatedAt time.Time) error
	// DeleteOpenOrder removes an order iff it is still open; returns
	// apperrors.ErrNotFound when the order is absent or already closed.
	DeleteOpenOrder(ctx context.Context, orderID string) error
	// SettleOrder commits the entire settlement in one transaction: close the
	// order, decrement each product's stock by the given delta (guarded
	// non-negative), apply the optional customer charge (guarded against the
	// credit limit), and append the SALE ledger entry. Any guard failure
	// rolls back everything.
	SettleOrder(ctx context.Context, order domain.Order, sale domain.Transaction, stockDeltas map[string]decimal.Decimal, charge *CustomerCharge) error
}
