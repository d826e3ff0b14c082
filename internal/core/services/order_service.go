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

type OrderService struct {
	orderRepo    portsrepo.OrderRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	publisher    portssvc.EventPublisher
}

func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, publisher portssvc.EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

var _ portssvc.OrderSvcFacade = (*OrderService)(nil)

func (s *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if !customer.IsActive {
			return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, customer.CustomerID)
		}
	}

	now := time.Now()
	order := domain.Order{
		OrderID:     uuid.NewString(),
		DisplayName: req.DisplayName,
		CustomerID:  req.CustomerID,
		Items:       []domain.OrderItem{},
		Total:       decimal.Zero,
		Status:      domain.OrderOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order in repository", slog.String("error", err.Error()), slog.String("order_id", order.OrderID))
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "orders", EntityID: order.OrderID, Action: "created"})
	logger.Info("Order created", slog.String("order_id", order.OrderID))
	return &order, nil
}

// CreateOrderForNewCustomer creates the customer and the tab in one atomic
// step. If either write fails, neither row exists.
func (s *OrderService) CreateOrderForNewCustomer(ctx context.Context, req dto.CreateOrderForNewCustomerRequest, creatorUserID string) (*domain.Order, *domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.CustomerName,
		Phone:       req.Phone,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: audit,
	}
	if err := customer.Validate(); err != nil {
		return nil, nil, err
	}

	order := domain.Order{
		OrderID:     uuid.NewString(),
		DisplayName: customer.Name,
		CustomerID:  &customer.CustomerID,
		Items:       []domain.OrderItem{},
		Total:       decimal.Zero,
		Status:      domain.OrderOpen,
		AuditFields: audit,
	}

	if err := s.orderRepo.SaveOrderWithCustomer(ctx, order, customer); err != nil {
		logger.Error("Failed to save order with new customer", slog.String("error", err.Error()), slog.String("order_id", order.OrderID))
		return nil, nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "customers", EntityID: customer.CustomerID, Action: "created"})
	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "orders", EntityID: order.OrderID, Action: "created"})
	logger.Info("Order created with new customer", slog.String("order_id", order.OrderID), slog.String("customer_id", customer.CustomerID))
	return &order, &customer, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find order by ID", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var status *domain.OrderStatus
	if params.Status != "" {
		st := domain.OrderStatus(params.Status)
		status = &st
	}

	orders, nextToken, err := s.orderRepo.ListOrders(ctx, status, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
		}
		return nil, nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nextToken, nil
}

// UpdateOrderItems replaces the whole item list of an open tab (last writer
// wins). Product name and unit price are snapshotted from the catalog unless
// the request overrides the price.
func (s *OrderService) UpdateOrderItems(ctx context.Context, orderID string, req dto.UpdateOrderItemsRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsOpen() {
		return nil, fmt.Errorf("%w: order %s is closed", apperrors.ErrInvalidState, orderID)
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, item.ProductID)
		}
		unitPrice := product.UnitPrice
		if item.UnitPrice.IsPositive() {
			unitPrice = item.UnitPrice
		}
		items[i] = domain.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		}
	}

	if err := order.ReplaceItems(items); err != nil {
		return nil, err
	}
	order.LastUpdatedAt = time.Now()
	order.LastUpdatedBy = userID

	if err := s.orderRepo.ReplaceOrderItems(ctx, *order); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to replace order items", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "orders", EntityID: orderID, Action: "updated"})
	logger.Info("Order items replaced", slog.String("order_id", orderID), slog.Int("item_count", len(items)))
	return order, nil
}

func (s *OrderService) ReassignCustomer(ctx context.Context, orderID string, req dto.ReassignCustomerRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if !customer.IsActive {
			return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, customer.CustomerID)
		}
	}

	if err := s.orderRepo.UpdateOrderCustomer(ctx, orderID, req.CustomerID, req.DisplayName, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to reassign order customer", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "orders", EntityID: orderID, Action: "updated"})
	logger.Info("Order customer reassigned", slog.String("order_id", orderID))
	return order, nil
}

// DiscardOrder removes an open tab. No stock was moved and no ledger entry
// was written while the tab was open, so there is nothing to compensate.
func (s *OrderService) DiscardOrder(ctx context.Context, orderID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orderRepo.DeleteOpenOrder(ctx, orderID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to discard order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "orders", EntityID: orderID, Action: "deleted"})
	logger.Info("Order discarded", slog.String("order_id", orderID), slog.String("discarded_by", userID))
	return nil
}
