package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

const (
	TransactionSale    TransactionType = "SALE"
	TransactionExpense TransactionType = "EXPENSE"
	TransactionPayment TransactionType = "PAYMENT"
)

// Transaction is an append-only ledger row. There are no UPDATE or DELETE
// paths for this table anywhere in the codebase.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Type          TransactionType `db:"type"`
	Total         decimal.Decimal `db:"total"`
	OccurredAt    time.Time       `db:"occurred_at"`
	CustomerID    *string         `db:"customer_id"`
	SupplierID    *string         `db:"supplier_id"`
	OrderID       *string         `db:"order_id"`
	PaymentMethod *string         `db:"payment_method"`
	Description   string          `db:"description"`
	AuditFields
}

// TransactionItem snapshots one sold line of a SALE transaction, including
// the cost price at the moment of settlement.
type TransactionItem struct {
	TransactionID string          `db:"transaction_id"`
	LineNo        int             `db:"line_no"`
	ProductID     string          `db:"product_id"`
	Name          string          `db:"name"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	CostPrice     decimal.Decimal `db:"cost_price"`
}
