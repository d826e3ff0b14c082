package services

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/dto"
)

// CustomerSvcFacade manages customers and payments against fiado debt.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)
	DeactivateCustomer(ctx context.Context, customerID string, userID string) error
	// ReceivePayment pays down fiado debt: amount must be positive and no
	// greater than the current balance. The balance decrement and the
	// PAYMENT ledger entry commit atomically.
	ReceivePayment(ctx context.Context, customerID string, req dto.ReceivePaymentRequest, userID string) (*domain.Transaction, error)
}
