package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus mirrors domain.OrderStatus at the persistence layer.
type OrderStatus string

const (
	OrderOpen   OrderStatus = "OPEN"
	OrderClosed OrderStatus = "CLOSED"
)

// Order is the database representation of a tab.
type Order struct {
	OrderID     string          `db:"order_id"`
	DisplayName string          `db:"display_name"`
	CustomerID  *string         `db:"customer_id"`
	Total       decimal.Decimal `db:"total"`
	Status      OrderStatus     `db:"status"`
	ClosedAt    *time.Time      `db:"closed_at"`
	AuditFields
}

// OrderItem is one row of order_items. Lines are replaced wholesale on every
// item edit, so there is no per-line identity beyond (order_id, line_no).
type OrderItem struct {
	OrderID   string          `db:"order_id"`
	LineNo    int             `db:"line_no"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Quantity  decimal.Decimal `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
}
