package services

import (
	"context"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/dto"
)

// UserSvcFacade manages staff users and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeactivateUser(ctx context.Context, userID string, updaterUserID string) error
	// AuthenticateUser verifies email/password; returns ErrUnauthorized on
	// mismatch without revealing which part failed.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	// GetOrCreateGoogleUser links or provisions a staff user from a verified
	// Google identity. New Google users default to the WAITER role.
	GetOrCreateGoogleUser(ctx context.Context, subject, email, name string) (*domain.User, error)
}

// TokenSvcFacade issues and rotates JWT access/refresh token pairs.
type TokenSvcFacade interface {
	GenerateTokenPair(ctx context.Context, user *domain.User) (access string, refresh string, expiresIn time.Duration, err error)
	// RefreshAccessToken validates the presented refresh token against the
	// stored hash, rotates it, and returns a new pair.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*domain.User, string, string, time.Duration, error)
	ClearRefreshToken(ctx context.Context, userID string) error
}

// GoogleUserInfo is the verified identity from a Google code exchange.
type GoogleUserInfo struct {
	Subject string
	Email   string
	Name    string
}

// GoogleOAuthSvcFacade exchanges an OAuth authorization code for a verified
// Google identity.
type GoogleOAuthSvcFacade interface {
	ExchangeCode(ctx context.Context, code string) (*GoogleUserInfo, error)
}
