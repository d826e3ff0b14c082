package dto

import (
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new customer.
// Balance always starts at zero; it only moves through settlement and payment.
type CreateCustomerRequest struct {
	Name        string           `json:"name" binding:"required"`
	Phone       string           `json:"phone"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// ClearCreditLimit removes the limit (back to unlimited); it wins over
// CreditLimit when both are sent.
type UpdateCustomerRequest struct {
	Name             *string          `json:"name"`
	Phone            *string          `json:"phone"`
	CreditLimit      *decimal.Decimal `json:"creditLimit"`
	ClearCreditLimit bool             `json:"clearCreditLimit"`
}

// ReceivePaymentRequest defines a payment against a customer's fiado balance.
type ReceivePaymentRequest struct {
	Amount decimal.Decimal      `json:"amount" binding:"required"`
	Method domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CARD PIX"`
}

// CustomerResponse mirrors domain.Customer.
type CustomerResponse struct {
	CustomerID    string           `json:"customerID"`
	Name          string           `json:"name"`
	Phone         string           `json:"phone"`
	Balance       decimal.Decimal  `json:"balance"`
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		Phone:         c.Phone,
		Balance:       c.Balance,
		CreditLimit:   c.CreditLimit,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit           int  `form:"limit,default=50"`
	Offset          int  `form:"offset,default=0"`
	IncludeInactive bool `form:"includeInactive,default=false"`
	DebtorsOnly     bool `form:"debtorsOnly,default=false"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}
