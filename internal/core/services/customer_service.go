package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	publisher    portssvc.EventPublisher
}

func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, publisher portssvc.EventPublisher) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, publisher: publisher}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		Balance:     decimal.Zero,
		CreditLimit: req.CreditLimit,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer in repository", slog.String("error", err.Error()), slog.String("customer_id", customer.CustomerID))
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "customers", EntityID: customer.CustomerID, Action: "created"})
	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find customer by ID", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var customers []domain.Customer
	var err error
	if params.DebtorsOnly {
		customers, err = s.customerRepo.ListDebtors(ctx, params.Limit, params.Offset)
	} else {
		customers, err = s.customerRepo.ListCustomers(ctx, params.Limit, params.Offset, params.IncludeInactive)
	}
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.ClearCreditLimit {
		customer.CreditLimit = nil
	} else if req.CreditLimit != nil {
		customer.CreditLimit = req.CreditLimit
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = userID

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "customers", EntityID: customerID, Action: "updated"})
	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

func (s *CustomerService) DeactivateCustomer(ctx context.Context, customerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}
	// A debtor cannot be deactivated; the debt would become invisible.
	if customer.Balance.IsPositive() {
		return fmt.Errorf("%w: customer %s still owes %s", apperrors.ErrInvalidState, customerID, customer.Balance.StringFixed(2))
	}

	if err := s.customerRepo.DeactivateCustomer(ctx, customerID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "customers", EntityID: customerID, Action: "deleted"})
	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	return nil
}

// ReceivePayment pays down fiado debt. The payment may never exceed the
// outstanding balance; the balance decrement and the PAYMENT ledger entry
// commit atomically, so a failed payment leaves both untouched.
func (s *CustomerService) ReceivePayment(ctx context.Context, customerID string, req dto.ReceivePaymentRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(customer.Balance) {
		return nil, fmt.Errorf("%w: payment of %s exceeds outstanding balance %s", apperrors.ErrValidation, req.Amount.String(), customer.Balance.String())
	}

	now := time.Now()
	method := req.Method
	payment := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TransactionPayment,
		Total:         req.Amount,
		OccurredAt:    now,
		CustomerID:    &customer.CustomerID,
		PaymentMethod: &method,
		Description:   fmt.Sprintf("Payment from %s", customer.Name),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The repository re-checks balance >= amount under the row lock, so a
	// concurrent payment cannot push the balance below zero.
	if err := s.customerRepo.ApplyPayment(ctx, customerID, req.Amount, payment); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to apply payment", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "customers", EntityID: customerID, Action: "updated"})
	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "transactions", EntityID: payment.TransactionID, Action: "created"})
	logger.Info("Payment received", slog.String("customer_id", customerID), slog.String("amount", req.Amount.String()))
	return &payment, nil
}
