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

// SettlementService is the only writer that closes orders, and the only
// sale-path mutator of product stock and customer balances.
type SettlementService struct {
	orderRepo    portsrepo.OrderRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	publisher    portssvc.EventPublisher
}

func NewSettlementService(orderRepo portsrepo.OrderRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, publisher portssvc.EventPublisher) *SettlementService {
	return &SettlementService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

var _ portssvc.SettlementSvcFacade = (*SettlementService)(nil)

// Settle validates the whole settlement up front, then hands one write-set to
// the repository, which re-checks every guard under row locks. Any failure
// leaves the order open, stock unmoved, the balance untouched, and the ledger
// without a new entry.
func (s *SettlementService) Settle(ctx context.Context, orderID string, req dto.SettleOrderRequest, userID string) (*domain.Order, *domain.Transaction, *decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !order.IsOpen() {
		return nil, nil, nil, fmt.Errorf("%w: order %s is already closed", apperrors.ErrInvalidState, orderID)
	}
	if len(order.Items) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: cannot settle an order with no items", apperrors.ErrValidation)
	}

	productIDs := make([]string, 0, len(order.Items))
	seen := map[string]bool{}
	for _, item := range order.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			productIDs = append(productIDs, item.ProductID)
		}
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	// Aggregate stock movement per product; an order can hold several lines
	// of the same product.
	stockDeltas := map[string]decimal.Decimal{}
	saleItems := make([]domain.TransactionItem, len(order.Items))
	for i, item := range order.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		delta := product.StockDelta(item.Quantity)
		if !delta.IsZero() {
			stockDeltas[product.ProductID] = stockDeltas[product.ProductID].Add(delta)
		}
		saleItems[i] = domain.TransactionItem{
			ProductID: product.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CostPrice: product.CostPrice,
		}
	}

	// Pre-check stock so the common failure reports before any write.
	for productID, delta := range stockDeltas {
		if products[productID].StockQty.LessThan(delta) {
			return nil, nil, nil, fmt.Errorf("%w: product %s has %s in stock, settlement needs %s",
				apperrors.ErrInsufficientStock, productID, products[productID].StockQty.String(), delta.String())
		}
	}

	order.RecomputeTotal()

	var charge *portsrepo.CustomerCharge
	var changeDue *decimal.Decimal
	switch req.PaymentMethod {
	case domain.PaymentFiado:
		if order.CustomerID == nil {
			return nil, nil, nil, fmt.Errorf("%w: fiado settlement requires the order to have a customer", apperrors.ErrValidation)
		}
		customer, err := s.customerRepo.FindCustomerByID(ctx, *order.CustomerID)
		if err != nil {
			return nil, nil, nil, err
		}
		if !customer.IsActive {
			return nil, nil, nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, customer.CustomerID)
		}
		if !customer.CanAbsorbCharge(order.Total) {
			return nil, nil, nil, fmt.Errorf("%w: charging %s would exceed the credit limit for customer %s",
				apperrors.ErrCreditLimitExceeded, order.Total.String(), customer.CustomerID)
		}
		charge = &portsrepo.CustomerCharge{CustomerID: customer.CustomerID, Amount: order.Total}
	case domain.PaymentCash:
		if req.AmountTendered != nil {
			if req.AmountTendered.LessThan(order.Total) {
				return nil, nil, nil, fmt.Errorf("%w: amount tendered %s is less than the total %s",
					apperrors.ErrValidation, req.AmountTendered.String(), order.Total.String())
			}
			change := req.AmountTendered.Sub(order.Total)
			changeDue = &change
		}
	case domain.PaymentCard, domain.PaymentPix:
		// Nothing extra to validate.
	default:
		return nil, nil, nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	now := time.Now()
	method := req.PaymentMethod
	sale := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TransactionSale,
		Total:         order.Total,
		OccurredAt:    now,
		CustomerID:    order.CustomerID,
		OrderID:       &order.OrderID,
		PaymentMethod: &method,
		Description:   fmt.Sprintf("Sale: %s", order.DisplayName),
		Items:         saleItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := order.Close(now); err != nil {
		return nil, nil, nil, err
	}
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.orderRepo.SettleOrder(ctx, *order, sale, stockDeltas, charge); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) &&
			!errors.Is(err, apperrors.ErrInvalidState) &&
			!errors.Is(err, apperrors.ErrInsufficientStock) &&
			!errors.Is(err, apperrors.ErrCreditLimitExceeded) {
			logger.Error("Failed to settle order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, nil, nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "orders", EntityID: order.OrderID, Action: "updated"})
	for productID := range stockDeltas {
		s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "products", EntityID: productID, Action: "updated"})
	}
	if charge != nil {
		s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "customers", EntityID: charge.CustomerID, Action: "updated"})
	}
	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "transactions", EntityID: sale.TransactionID, Action: "created"})

	logger.Info("Order settled",
		slog.String("order_id", order.OrderID),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.String("total", order.Total.String()))
	return order, &sale, changeDue, nil
}
