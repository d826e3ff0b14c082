package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/core/services"
	"github.com/boteco-app/boteco-backend/internal/platform/config"
	"github.com/boteco-app/boteco-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	cfg      *config.Config
	mockRepo *MockUserRepository
	service  portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "boteco-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.mockRepo = new(MockUserRepository)
	userService := services.NewUserService(suite.mockRepo)
	suite.service = services.NewTokenService(suite.cfg, userService, suite.mockRepo)
}

func (suite *TokenServiceTestSuite) TestGenerateTokenPair() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.RoleCashier, IsActive: true}

	suite.mockRepo.On("UpdateRefreshToken", ctx, user.UserID,
		mock.AnythingOfType("*string"),
		mock.AnythingOfType("*time.Time"),
	).Return(nil).Once()

	access, refresh, expiresIn, err := suite.service.GenerateTokenPair(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(access)
	suite.Equal(time.Hour, expiresIn)

	// The refresh token is self-describing: "<userID>.<random>".
	userID, raw, found := strings.Cut(refresh, ".")
	suite.Require().True(found)
	suite.Equal(user.UserID, userID)
	suite.NotEmpty(raw)

	// Only the hash is persisted, never the raw token.
	storedHash := suite.mockRepo.Calls[0].Arguments.Get(2).(*string)
	suite.Require().NotNil(storedHash)
	suite.NotEqual(raw, *storedHash)
	suite.True(utils.CompareRefreshTokenHash(raw, *storedHash))

	claims, err := utils.ParseAndValidateJWT(access, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(domain.RoleCashier, claims.Role)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_RotatesToken() {
	ctx := context.Background()
	raw := "random-part"
	hash := utils.HashRefreshToken(raw)
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:             uuid.NewString(),
		Role:               domain.RoleWaiter,
		IsActive:           true,
		RefreshTokenHash:   &hash,
		RefreshTokenExpiry: &expiry,
	}

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockRepo.On("UpdateRefreshToken", ctx, user.UserID,
		mock.AnythingOfType("*string"),
		mock.AnythingOfType("*time.Time"),
	).Return(nil).Once()

	refreshed, access, newRefresh, _, err := suite.service.RefreshAccessToken(ctx, user.UserID+"."+raw)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, refreshed.UserID)
	suite.NotEmpty(access)
	suite.NotEqual(user.UserID+"."+raw, newRefresh)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_ExpiredToken() {
	ctx := context.Background()
	raw := "random-part"
	hash := utils.HashRefreshToken(raw)
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:             uuid.NewString(),
		IsActive:           true,
		RefreshTokenHash:   &hash,
		RefreshTokenExpiry: &expiry,
	}

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, _, _, _, err := suite.service.RefreshAccessToken(ctx, user.UserID+"."+raw)

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_WrongToken() {
	ctx := context.Background()
	hash := utils.HashRefreshToken("the-real-token")
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:             uuid.NewString(),
		IsActive:           true,
		RefreshTokenHash:   &hash,
		RefreshTokenExpiry: &expiry,
	}

	suite.mockRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, _, _, _, err := suite.service.RefreshAccessToken(ctx, user.UserID+".some-other-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestRefreshAccessToken_MalformedToken() {
	ctx := context.Background()

	_, _, _, _, err := suite.service.RefreshAccessToken(ctx, "no-separator")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *TokenServiceTestSuite) TestClearRefreshToken() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("UpdateRefreshToken", ctx, userID, (*string)(nil), (*time.Time)(nil)).Return(nil).Once()

	suite.Require().NoError(suite.service.ClearRefreshToken(ctx, userID))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
