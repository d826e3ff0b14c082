package dto

import (
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records a manual expense in the ledger (rent, ice,
// repairs). Stock purchases go through the product restock endpoint instead.
type CreateExpenseRequest struct {
	Total       decimal.Decimal `json:"total" binding:"required"`
	Description string          `json:"description" binding:"required"`
	SupplierID  *string         `json:"supplierID"`
}

// TransactionItemResponse mirrors domain.TransactionItem.
type TransactionItemResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID string                    `json:"transactionID"`
	Type          domain.TransactionType    `json:"type"`
	Total         decimal.Decimal           `json:"total"`
	OccurredAt    time.Time                 `json:"occurredAt"`
	CustomerID    *string                   `json:"customerID"`
	SupplierID    *string                   `json:"supplierID"`
	OrderID       *string                   `json:"orderID"`
	PaymentMethod *domain.PaymentMethod     `json:"paymentMethod"`
	Description   string                    `json:"description"`
	Items         []TransactionItemResponse `json:"items,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(t.Items))
	for i, item := range t.Items {
		items[i] = TransactionItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CostPrice: item.CostPrice,
		}
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          t.Type,
		Total:         t.Total,
		OccurredAt:    t.OccurredAt,
		CustomerID:    t.CustomerID,
		SupplierID:    t.SupplierID,
		OrderID:       t.OrderID,
		PaymentMethod: t.PaymentMethod,
		Description:   t.Description,
		Items:         items,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Type       string     `form:"type" binding:"omitempty,oneof=SALE EXPENSE PAYMENT"`
	CustomerID *string    `form:"customerID"`
	SupplierID *string    `form:"supplierID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=20"`
	NextToken  *string    `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
