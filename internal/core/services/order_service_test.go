package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/core/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo    *MockOrderRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	publisher        *MockPublisher
	service          *services.OrderService

	userID    string
	orderID   string
	productID string
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.publisher = &MockPublisher{}
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockProductRepo, suite.mockCustomerRepo, suite.publisher)

	suite.userID = uuid.NewString()
	suite.orderID = uuid.NewString()
	suite.productID = uuid.NewString()
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{DisplayName: "Mesa 7"}

	suite.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.NotEmpty(order.OrderID)
	suite.Equal("Mesa 7", order.DisplayName)
	suite.Nil(order.CustomerID)
	suite.Equal(domain.OrderOpen, order.Status)
	suite.True(order.Total.IsZero())
	suite.Empty(order.Items)

	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InactiveCustomerFails() {
	ctx := context.Background()
	customerID := uuid.NewString()
	customer := &domain.Customer{CustomerID: customerID, Name: "Seu Zé", IsActive: false}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(customer, nil).Once()

	_, err := suite.service.CreateOrder(ctx, dto.CreateOrderRequest{
		DisplayName: "Seu Zé",
		CustomerID:  &customerID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrderForNewCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateOrderForNewCustomerRequest{CustomerName: "Dona Maria", Phone: "11 98888-0000"}

	suite.mockOrderRepo.On("SaveOrderWithCustomer", ctx,
		mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("domain.Customer"),
	).Return(nil).Once()

	order, customer, err := suite.service.CreateOrderForNewCustomer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.Require().NotNil(customer)
	suite.Equal(customer.Name, order.DisplayName)
	suite.Require().NotNil(order.CustomerID)
	suite.Equal(customer.CustomerID, *order.CustomerID)
	suite.True(customer.Balance.IsZero())
	suite.Nil(customer.CreditLimit)

	// Both creations announced.
	suite.Require().Len(suite.publisher.Events, 2)
	suite.Equal("customers", suite.publisher.Events[0].Collection)
	suite.Equal("orders", suite.publisher.Events[1].Collection)

	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrderItems_SnapshotsCatalogPrice() {
	ctx := context.Background()
	order := &domain.Order{
		OrderID:     suite.orderID,
		DisplayName: "Mesa 2",
		Status:      domain.OrderOpen,
	}
	product := domain.Product{
		ProductID: suite.productID,
		Name:      "Caipirinha",
		UnitPrice: decimal.NewFromInt(18),
		SaleType:  domain.SaleTypeUnit,
		IsActive:  true,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockOrderRepo.On("ReplaceOrderItems", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	updated, err := suite.service.UpdateOrderItems(ctx, suite.orderID, dto.UpdateOrderItemsRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: suite.productID, Quantity: decimal.NewFromInt(2)},
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Items, 1)
	suite.Equal("Caipirinha", updated.Items[0].Name)
	suite.True(updated.Items[0].UnitPrice.Equal(decimal.NewFromInt(18)))
	suite.True(updated.Total.Equal(decimal.NewFromInt(36)))

	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrderItems_PriceOverride() {
	ctx := context.Background()
	order := &domain.Order{OrderID: suite.orderID, Status: domain.OrderOpen}
	product := domain.Product{
		ProductID: suite.productID,
		Name:      "Caipirinha",
		UnitPrice: decimal.NewFromInt(18),
		SaleType:  domain.SaleTypeUnit,
		IsActive:  true,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockOrderRepo.On("ReplaceOrderItems", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	updated, err := suite.service.UpdateOrderItems(ctx, suite.orderID, dto.UpdateOrderItemsRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: suite.productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(15)},
		},
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Items[0].UnitPrice.Equal(decimal.NewFromInt(15)))
}

func (suite *OrderServiceTestSuite) TestUpdateOrderItems_ClosedOrderFails() {
	ctx := context.Background()
	now := time.Now()
	order := &domain.Order{
		OrderID:  suite.orderID,
		Status:   domain.OrderClosed,
		ClosedAt: &now,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()

	_, err := suite.service.UpdateOrderItems(ctx, suite.orderID, dto.UpdateOrderItemsRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: suite.productID, Quantity: decimal.NewFromInt(1)},
		},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "ReplaceOrderItems", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderItems_UnknownProductFails() {
	ctx := context.Background()
	order := &domain.Order{OrderID: suite.orderID, Status: domain.OrderOpen}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{}, nil).Once()

	_, err := suite.service.UpdateOrderItems(ctx, suite.orderID, dto.UpdateOrderItemsRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: suite.productID, Quantity: decimal.NewFromInt(1)},
		},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestDiscardOrder_Success() {
	ctx := context.Background()

	suite.mockOrderRepo.On("DeleteOpenOrder", ctx, suite.orderID).Return(nil).Once()

	err := suite.service.DiscardOrder(ctx, suite.orderID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(suite.publisher.Events, 1)
	suite.Equal("deleted", suite.publisher.Events[0].Action)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestDiscardOrder_ClosedOrderIsNotFound() {
	ctx := context.Background()

	// Once settled, the tab is ledger history; the discard path treats it
	// the same as an order that never existed.
	suite.mockOrderRepo.On("DeleteOpenOrder", ctx, suite.orderID).
		Return(fmt.Errorf("%w: no open order %s", apperrors.ErrNotFound, suite.orderID)).Once()

	err := suite.service.DiscardOrder(ctx, suite.orderID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrInvalidState)
	suite.Empty(suite.publisher.Events)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
