package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/platform/config"
	"github.com/boteco-app/boteco-backend/internal/utils"
)

// tokenService issues JWT access tokens and rotates opaque refresh tokens.
// A refresh token is self-describing: "<userID>.<random>", with only the
// SHA256 of the random part stored server side.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
	userUpdater refreshTokenUpdater
}

// refreshTokenUpdater is the slice of the user repository the token service
// needs to persist rotated tokens.
type refreshTokenUpdater interface {
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade, userUpdater refreshTokenUpdater) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
		userUpdater: userUpdater,
	}
}

// GenerateTokenPair issues an access token and a fresh refresh token, storing
// the refresh token hash on the user row.
func (s *tokenService) GenerateTokenPair(ctx context.Context, user *domain.User) (string, string, time.Duration, error) {
	access, err := utils.GenerateJWT(user.UserID, user.Role, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	raw, err := utils.GenerateRefreshToken()
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	hash := utils.HashRefreshToken(raw)
	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userUpdater.UpdateRefreshToken(ctx, user.UserID, &hash, &expiry); err != nil {
		return "", "", 0, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return access, user.UserID + "." + raw, s.cfg.JWTExpiryDuration, nil
}

// RefreshAccessToken validates the presented refresh token against the stored
// hash, rotates it, and returns a new token pair.
func (s *tokenService) RefreshAccessToken(ctx context.Context, refreshToken string) (*domain.User, string, string, time.Duration, error) {
	userID, raw, found := strings.Cut(refreshToken, ".")
	if !found || userID == "" || raw == "" {
		return nil, "", "", 0, apperrors.ErrUnauthorized
	}

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", "", 0, apperrors.ErrUnauthorized
	}
	if !user.IsActive || user.RefreshTokenHash == nil || user.RefreshTokenExpiry == nil {
		return nil, "", "", 0, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiry) {
		return nil, "", "", 0, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(raw, *user.RefreshTokenHash) {
		return nil, "", "", 0, apperrors.ErrUnauthorized
	}

	access, newRefresh, expiresIn, err := s.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, "", "", 0, err
	}
	return user, access, newRefresh, expiresIn, nil
}

// ClearRefreshToken invalidates the stored refresh token (logout).
func (s *tokenService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userUpdater.UpdateRefreshToken(ctx, userID, nil, nil)
}
