package services_test

import (
	"context"
	"testing"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/core/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockProductRepository
	mockSupplierRepo *MockSupplierRepository
	publisher        *MockPublisher
	service          *services.ProductService

	userID    string
	productID string
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.publisher = &MockPublisher{}
	suite.service = services.NewProductService(suite.mockRepo, suite.mockSupplierRepo, suite.publisher)
	suite.userID = uuid.NewString()
	suite.productID = uuid.NewString()
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:      "Cerveja Lata",
		Category:  "Bebidas",
		CostPrice: decimal.NewFromInt(3),
		UnitPrice: decimal.NewFromInt(5),
		StockQty:  decimal.NewFromInt(24),
		SaleType:  domain.SaleTypeUnit,
	}

	suite.mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.NotEmpty(product.ProductID)
	suite.Equal(req.Name, product.Name)
	suite.True(product.BaseUnitSize.Equal(decimal.NewFromInt(1)))
	suite.True(product.IsActive)
	suite.Equal(suite.userID, product.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DoseWithoutBaseUnitSizeFails() {
	ctx := context.Background()
	zero := decimal.Zero
	req := dto.CreateProductRequest{
		Name:         "Cachaça Dose",
		UnitPrice:    decimal.NewFromInt(6),
		SaleType:     domain.SaleTypeDose,
		BaseUnitSize: &zero,
	}

	_, err := suite.service.CreateProduct(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestReceiveStock_ScalesByBaseUnitSize() {
	ctx := context.Background()
	product := &domain.Product{
		ProductID:    suite.productID,
		Name:         "Cachaça Artesanal",
		SaleType:     domain.SaleTypeDose,
		BaseUnitSize: decimal.NewFromInt(20), // 20 doses per bottle
		StockQty:     decimal.NewFromInt(10),
		IsActive:     true,
	}

	suite.mockRepo.On("FindProductByID", ctx, suite.productID).Return(product, nil).Twice()
	suite.mockRepo.On("ReceiveStock", ctx, suite.productID,
		mock.AnythingOfType("decimal.Decimal"),
		(*domain.Transaction)(nil),
		suite.userID,
	).Return(nil).Once()

	_, err := suite.service.ReceiveStock(ctx, suite.productID, dto.ReceiveStockRequest{
		Quantity: decimal.NewFromInt(2), // two bottles
	}, suite.userID)

	suite.Require().NoError(err)

	// Two bottles of twenty doses each.
	delta := suite.mockRepo.Calls[1].Arguments.Get(2).(decimal.Decimal)
	suite.True(delta.Equal(decimal.NewFromInt(40)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestReceiveStock_WithCostRecordsExpense() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	cost := decimal.NewFromInt(72)
	product := &domain.Product{
		ProductID:    suite.productID,
		Name:         "Cerveja Lata",
		SaleType:     domain.SaleTypeUnit,
		BaseUnitSize: decimal.NewFromInt(1),
		StockQty:     decimal.NewFromInt(5),
		IsActive:     true,
	}
	supplier := &domain.Supplier{SupplierID: supplierID, Name: "Distribuidora Central", IsActive: true}

	suite.mockRepo.On("FindProductByID", ctx, suite.productID).Return(product, nil).Twice()
	suite.mockSupplierRepo.On("FindSupplierByID", ctx, supplierID).Return(supplier, nil).Once()
	suite.mockRepo.On("ReceiveStock", ctx, suite.productID,
		mock.AnythingOfType("decimal.Decimal"),
		mock.AnythingOfType("*domain.Transaction"),
		suite.userID,
	).Return(nil).Once()

	_, err := suite.service.ReceiveStock(ctx, suite.productID, dto.ReceiveStockRequest{
		Quantity:   decimal.NewFromInt(24),
		TotalCost:  &cost,
		SupplierID: &supplierID,
	}, suite.userID)

	suite.Require().NoError(err)

	expense := suite.mockRepo.Calls[1].Arguments.Get(3).(*domain.Transaction)
	suite.Require().NotNil(expense)
	suite.Equal(domain.TransactionExpense, expense.Type)
	suite.True(expense.Total.Equal(cost))
	suite.Require().NotNil(expense.SupplierID)
	suite.Equal(supplierID, *expense.SupplierID)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSupplierRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestReceiveStock_ServiceProductFails() {
	ctx := context.Background()
	product := &domain.Product{
		ProductID: suite.productID,
		Name:      "Couvert",
		SaleType:  domain.SaleTypeService,
		IsActive:  true,
	}

	suite.mockRepo.On("FindProductByID", ctx, suite.productID).Return(product, nil).Once()

	_, err := suite.service.ReceiveStock(ctx, suite.productID, dto.ReceiveStockRequest{
		Quantity: decimal.NewFromInt(1),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReceiveStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestReceiveStock_NonPositiveQuantityFails() {
	ctx := context.Background()

	_, err := suite.service.ReceiveStock(ctx, suite.productID, dto.ReceiveStockRequest{
		Quantity: decimal.Zero,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
