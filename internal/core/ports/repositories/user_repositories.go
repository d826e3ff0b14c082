package repositories

import (
	"context"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
)

// UserRepositoryFacade persists staff users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByGoogleSubject(ctx context.Context, subject string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error
	DeactivateUser(ctx context.Context, userID string, updatedBy string) error
}
