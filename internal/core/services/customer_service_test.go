package services_test

import (
	"context"
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

type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockCustomerRepository
	publisher *MockPublisher
	service   *services.CustomerService

	userID     string
	customerID string
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.publisher = &MockPublisher{}
	suite.service = services.NewCustomerService(suite.mockRepo, suite.publisher)
	suite.userID = uuid.NewString()
	suite.customerID = uuid.NewString()
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	limit := decimal.NewFromInt(50)
	req := dto.CreateCustomerRequest{
		Name:        "Dona Maria",
		Phone:       "11 99999-0000",
		CreditLimit: &limit,
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.NotEmpty(customer.CustomerID)
	suite.Equal(req.Name, customer.Name)
	suite.True(customer.Balance.IsZero())
	suite.Require().NotNil(customer.CreditLimit)
	suite.True(customer.CreditLimit.Equal(limit))
	suite.True(customer.IsActive)
	suite.Equal(suite.userID, customer.CreatedBy)
	suite.WithinDuration(time.Now(), customer.CreatedAt, time.Second)

	suite.Require().Len(suite.publisher.Events, 1)
	suite.Equal("customers", suite.publisher.Events[0].Collection)
	suite.Equal("created", suite.publisher.Events[0].Action)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_NegativeCreditLimitFails() {
	ctx := context.Background()
	limit := decimal.NewFromInt(-10)
	req := dto.CreateCustomerRequest{Name: "Dona Maria", CreditLimit: &limit}

	_, err := suite.service.CreateCustomer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestReceivePayment_Success() {
	ctx := context.Background()
	customer := &domain.Customer{
		CustomerID: suite.customerID,
		Name:       "Seu Zé",
		Balance:    decimal.NewFromInt(50),
		IsActive:   true,
	}

	suite.mockRepo.On("FindCustomerByID", ctx, suite.customerID).Return(customer, nil).Once()
	suite.mockRepo.On("ApplyPayment", ctx, suite.customerID,
		mock.AnythingOfType("decimal.Decimal"),
		mock.AnythingOfType("domain.Transaction"),
	).Return(nil).Once()

	txn, err := suite.service.ReceivePayment(ctx, suite.customerID, dto.ReceivePaymentRequest{
		Amount: decimal.NewFromInt(30),
		Method: domain.PaymentCash,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.TransactionPayment, txn.Type)
	suite.True(txn.Total.Equal(decimal.NewFromInt(30)))
	suite.Require().NotNil(txn.CustomerID)
	suite.Equal(suite.customerID, *txn.CustomerID)
	suite.Require().NotNil(txn.PaymentMethod)
	suite.Equal(domain.PaymentCash, *txn.PaymentMethod)

	suite.Require().Len(suite.publisher.Events, 2)
	suite.Equal("customers", suite.publisher.Events[0].Collection)
	suite.Equal("transactions", suite.publisher.Events[1].Collection)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestReceivePayment_ExceedsBalanceFails() {
	ctx := context.Background()
	customer := &domain.Customer{
		CustomerID: suite.customerID,
		Name:       "Seu Zé",
		Balance:    decimal.NewFromInt(50),
		IsActive:   true,
	}

	suite.mockRepo.On("FindCustomerByID", ctx, suite.customerID).Return(customer, nil).Once()

	_, err := suite.service.ReceivePayment(ctx, suite.customerID, dto.ReceivePaymentRequest{
		Amount: decimal.NewFromInt(60),
		Method: domain.PaymentCash,
	}, suite.userID)

	// 60 > 50: rejected before any write.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.Events)
}

func (suite *CustomerServiceTestSuite) TestReceivePayment_NonPositiveAmountFails() {
	ctx := context.Background()

	_, err := suite.service.ReceivePayment(ctx, suite.customerID, dto.ReceivePaymentRequest{
		Amount: decimal.Zero,
		Method: domain.PaymentCash,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCustomerByID", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestDeactivateCustomer_WithDebtFails() {
	ctx := context.Background()
	customer := &domain.Customer{
		CustomerID: suite.customerID,
		Name:       "Seu Zé",
		Balance:    decimal.NewFromInt(10),
		IsActive:   true,
	}

	suite.mockRepo.On("FindCustomerByID", ctx, suite.customerID).Return(customer, nil).Once()

	err := suite.service.DeactivateCustomer(ctx, suite.customerID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestDeactivateCustomer_Success() {
	ctx := context.Background()
	customer := &domain.Customer{
		CustomerID: suite.customerID,
		Name:       "Seu Zé",
		Balance:    decimal.Zero,
		IsActive:   true,
	}

	suite.mockRepo.On("FindCustomerByID", ctx, suite.customerID).Return(customer, nil).Once()
	suite.mockRepo.On("DeactivateCustomer", ctx, suite.customerID, suite.userID).Return(nil).Once()

	err := suite.service.DeactivateCustomer(ctx, suite.customerID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
