package domain

import (
	"fmt"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a tab.
type OrderStatus string

const (
	OrderOpen   OrderStatus = "OPEN"
	OrderClosed OrderStatus = "CLOSED"
)

// OrderItem is one line on an open tab. Name and UnitPrice are snapshotted
// from the product at the time the line is added so later price edits do not
// rewrite history.
type OrderItem struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Validate checks the per-line invariants.
func (i OrderItem) Validate() error {
	if i.ProductID == "" {
		return fmt.Errorf("%w: order item product ID is required", apperrors.ErrValidation)
	}
	if !i.Quantity.IsPositive() {
		return fmt.Errorf("%w: order item quantity must be positive", apperrors.ErrValidation)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: order item unit price must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// Subtotal is quantity x unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Order is an open tab accumulating line items until it is settled.
// Total is never stored independently of the items: every item mutation goes
// through ReplaceItems, which recomputes it.
type Order struct {
	OrderID     string          `json:"orderID"`
	DisplayName string          `json:"displayName"` // customer name or table label
	CustomerID  *string         `json:"customerID"`
	Items       []OrderItem     `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
	ClosedAt    *time.Time      `json:"closedAt"`
	AuditFields
}

// IsOpen reports whether the tab can still be mutated.
func (o Order) IsOpen() bool {
	return o.Status == OrderOpen
}

// RecomputeTotal derives the total from the current items.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.Total = total
}

// ReplaceItems swaps the whole item list (last writer wins) after validating
// every line, then recomputes the total.
func (o *Order) ReplaceItems(items []OrderItem) error {
	if !o.IsOpen() {
		return fmt.Errorf("%w: order %s is closed", apperrors.ErrInvalidState, o.OrderID)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.Items = items
	o.RecomputeTotal()
	return nil
}

// Close transitions the order to CLOSED. Only the settlement engine calls
// this; a closed order is immutable history.
func (o *Order) Close(at time.Time) error {
	if !o.IsOpen() {
		return fmt.Errorf("%w: order %s already closed", apperrors.ErrInvalidState, o.OrderID)
	}
	o.Status = OrderClosed
	o.ClosedAt = &at
	return nil
}
