package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	"github.com/boteco-app/boteco-backend/internal/core/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockOrderRepo    *MockOrderRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	publisher        *MockPublisher
	service          *services.SettlementService

	userID     string
	orderID    string
	productID  string
	customerID string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.publisher = &MockPublisher{}
	suite.service = services.NewSettlementService(suite.mockOrderRepo, suite.mockProductRepo, suite.mockCustomerRepo, suite.publisher)

	suite.userID = uuid.NewString()
	suite.orderID = uuid.NewString()
	suite.productID = uuid.NewString()
	suite.customerID = uuid.NewString()
}

func (suite *SettlementServiceTestSuite) openOrder(customerID *string) *domain.Order {
	return &domain.Order{
		OrderID:     suite.orderID,
		DisplayName: "Mesa 3",
		CustomerID:  customerID,
		Status:      domain.OrderOpen,
		Items: []domain.OrderItem{
			{
				ProductID: suite.productID,
				Name:      "Cerveja Lata",
				Quantity:  decimal.NewFromInt(3),
				UnitPrice: decimal.NewFromInt(5),
			},
		},
	}
}

func (suite *SettlementServiceTestSuite) beerProduct(stock int64) domain.Product {
	return domain.Product{
		ProductID:    suite.productID,
		Name:         "Cerveja Lata",
		CostPrice:    decimal.NewFromInt(3),
		UnitPrice:    decimal.NewFromInt(5),
		StockQty:     decimal.NewFromInt(stock),
		SaleType:     domain.SaleTypeUnit,
		BaseUnitSize: decimal.NewFromInt(1),
		IsActive:     true,
	}
}

func (suite *SettlementServiceTestSuite) TestSettle_CashSuccess() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	product := suite.beerProduct(10)

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockOrderRepo.On("SettleOrder", ctx,
		mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		(*portsrepo.CustomerCharge)(nil),
	).Return(nil).Once()

	tendered := decimal.NewFromInt(20)
	closedOrder, sale, changeDue, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod:  domain.PaymentCash,
		AmountTendered: &tendered,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(closedOrder)
	suite.Require().NotNil(sale)

	suite.Equal(domain.OrderClosed, closedOrder.Status)
	suite.NotNil(closedOrder.ClosedAt)
	suite.True(closedOrder.Total.Equal(decimal.NewFromInt(15)))

	suite.Equal(domain.TransactionSale, sale.Type)
	suite.True(sale.Total.Equal(decimal.NewFromInt(15)))
	suite.Nil(sale.CustomerID)
	suite.Require().NotNil(sale.PaymentMethod)
	suite.Equal(domain.PaymentCash, *sale.PaymentMethod)
	suite.Require().Len(sale.Items, 1)
	suite.True(sale.Items[0].CostPrice.Equal(product.CostPrice))

	suite.Require().NotNil(changeDue)
	suite.True(changeDue.Equal(decimal.NewFromInt(5)))

	// Stock moves by exactly the sold quantity.
	deltas := suite.mockOrderRepo.Calls[1].Arguments.Get(3).(map[string]decimal.Decimal)
	suite.True(deltas[suite.productID].Equal(decimal.NewFromInt(3)))

	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_FiadoChargesCustomer() {
	ctx := context.Background()
	order := suite.openOrder(&suite.customerID)
	product := suite.beerProduct(10)
	limit := decimal.NewFromInt(100)
	customer := &domain.Customer{
		CustomerID:  suite.customerID,
		Name:        "Seu Zé",
		Balance:     decimal.NewFromInt(20),
		CreditLimit: &limit,
		IsActive:    true,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(customer, nil).Once()
	suite.mockOrderRepo.On("SettleOrder", ctx,
		mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		mock.AnythingOfType("*repositories.CustomerCharge"),
	).Return(nil).Once()

	_, sale, changeDue, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentFiado,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(changeDue)
	suite.Require().NotNil(sale.CustomerID)
	suite.Equal(suite.customerID, *sale.CustomerID)

	charge := suite.mockOrderRepo.Calls[1].Arguments.Get(4).(*portsrepo.CustomerCharge)
	suite.Require().NotNil(charge)
	suite.Equal(suite.customerID, charge.CustomerID)
	suite.True(charge.Amount.Equal(decimal.NewFromInt(15)))

	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_FiadoWithoutCustomerFails() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	product := suite.beerProduct(10)

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentFiado,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SettleOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettle_CreditLimitExceeded() {
	ctx := context.Background()
	order := suite.openOrder(&suite.customerID)
	product := suite.beerProduct(10)
	limit := decimal.NewFromInt(30)
	customer := &domain.Customer{
		CustomerID:  suite.customerID,
		Name:        "Seu Zé",
		Balance:     decimal.NewFromInt(20),
		CreditLimit: &limit,
		IsActive:    true,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customerID).Return(customer, nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentFiado,
	}, suite.userID)

	// 20 + 15 > 30, so nothing is written.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCreditLimitExceeded)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SettleOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.Events)
}

func (suite *SettlementServiceTestSuite) TestSettle_InsufficientStock() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	product := suite.beerProduct(2)

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentCash,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SettleOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettle_MultiItemAbortsWhenLastProductShort() {
	ctx := context.Background()
	shortProductID := uuid.NewString()

	// First line is fully stocked; only the last line is short.
	order := suite.openOrder(nil)
	order.Items = append(order.Items, domain.OrderItem{
		ProductID: shortProductID,
		Name:      "Caipirinha",
		Quantity:  decimal.NewFromInt(3),
		UnitPrice: decimal.NewFromInt(18),
	})

	beer := suite.beerProduct(10)
	caipirinha := domain.Product{
		ProductID:    shortProductID,
		Name:         "Caipirinha",
		CostPrice:    decimal.NewFromInt(6),
		UnitPrice:    decimal.NewFromInt(18),
		StockQty:     decimal.NewFromInt(1),
		SaleType:     domain.SaleTypeUnit,
		BaseUnitSize: decimal.NewFromInt(1),
		IsActive:     true,
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID, shortProductID}).
		Return(map[string]domain.Product{suite.productID: beer, shortProductID: caipirinha}, nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentCash,
	}, suite.userID)

	// One short line sinks the whole settlement; the stocked line must not
	// be written either.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SettleOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.Events)
}

func (suite *SettlementServiceTestSuite) TestSettle_ServiceProductMovesNoStock() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	product := suite.beerProduct(0)
	product.SaleType = domain.SaleTypeService

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockOrderRepo.On("SettleOrder", ctx,
		mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		(*portsrepo.CustomerCharge)(nil),
	).Return(nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentPix,
	}, suite.userID)

	suite.Require().NoError(err)
	deltas := suite.mockOrderRepo.Calls[1].Arguments.Get(3).(map[string]decimal.Decimal)
	suite.Empty(deltas)

	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_ClosedOrderFails() {
	ctx := context.Background()
	now := time.Now()
	order := suite.openOrder(nil)
	order.Status = domain.OrderClosed
	order.ClosedAt = &now

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentCash,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *SettlementServiceTestSuite) TestSettle_EmptyOrderFails() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	order.Items = nil

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentCash,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettle_CashTenderBelowTotalFails() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	product := suite.beerProduct(10)

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()

	tendered := decimal.NewFromInt(10)
	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod:  domain.PaymentCash,
		AmountTendered: &tendered,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettle_DoseProductScalesStockDelta() {
	ctx := context.Background()
	order := suite.openOrder(nil)
	order.Items[0].Quantity = decimal.NewFromInt(4) // four doses

	product := suite.beerProduct(10)
	product.SaleType = domain.SaleTypeDose
	product.BaseUnitSize = decimal.RequireFromString("0.05") // 50ml pour from a 1L bottle

	suite.mockOrderRepo.On("FindOrderByID", ctx, suite.orderID).Return(order, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{suite.productID}).
		Return(map[string]domain.Product{suite.productID: product}, nil).Once()
	suite.mockOrderRepo.On("SettleOrder", ctx,
		mock.AnythingOfType("domain.Order"),
		mock.AnythingOfType("domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		(*portsrepo.CustomerCharge)(nil),
	).Return(nil).Once()

	_, _, _, err := suite.service.Settle(ctx, suite.orderID, dto.SettleOrderRequest{
		PaymentMethod: domain.PaymentCard,
	}, suite.userID)

	suite.Require().NoError(err)
	deltas := suite.mockOrderRepo.Calls[1].Arguments.Get(3).(map[string]decimal.Decimal)
	suite.True(deltas[suite.productID].Equal(decimal.RequireFromString("0.2")))

	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
