package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	// TransactionSale records a settled tab.
	TransactionSale TransactionType = "SALE"
	// TransactionExpense records money leaving the bar (stock purchases etc).
	TransactionExpense TransactionType = "EXPENSE"
	// TransactionPayment records a customer paying down fiado debt.
	TransactionPayment TransactionType = "PAYMENT"
)

// PaymentMethod is how a sale or payment was tendered.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentPix  PaymentMethod = "PIX"
	// PaymentFiado defers payment onto the customer's balance.
	PaymentFiado PaymentMethod = "FIADO"
)

// TransactionItem snapshots one sold line inside a SALE transaction. CostPrice
// is captured at settlement time so profit reporting survives later price edits.
type TransactionItem struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// Transaction is an append-only ledger entry. Entries are never edited or
// deleted after creation; all financial reporting derives from them.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	Type          TransactionType   `json:"type"`
	Total         decimal.Decimal   `json:"total"`
	OccurredAt    time.Time         `json:"occurredAt"`
	CustomerID    *string           `json:"customerID"`
	SupplierID    *string           `json:"supplierID"`
	OrderID       *string           `json:"orderID"`
	PaymentMethod *PaymentMethod    `json:"paymentMethod"`
	Description   string            `json:"description"`
	Items         []TransactionItem `json:"items"`
	AuditFields
}

// Profit is the margin on one sold line.
func (i TransactionItem) Profit() decimal.Decimal {
	return i.UnitPrice.Sub(i.CostPrice).Mul(i.Quantity)
}
