package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/boteco-app/boteco-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

type authHandler struct {
	cfg          *config.Config
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	googleOAuth  portssvc.GoogleOAuthSvcFacade
}

func newAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		cfg:          cfg,
		userService:  services.User,
		tokenService: services.Token,
		googleOAuth:  services.GoogleOAuth,
	}
}

// registerAuthRoutes wires the public authentication endpoints.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(cfg, services)
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.POST("/google/exchange", h.exchangeGoogleCode)
	}
}

// setRefreshCookie stores the refresh token in an HTTP-only cookie scoped to
// the auth endpoints so it never travels on ordinary API calls.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		token,
		int(h.cfg.RefreshTokenExpiryDuration.Seconds()),
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *authHandler) respondWithTokenPair(c *gin.Context, user *domain.User) {
	access, refresh, expiresIn, err := h.tokenService.GenerateTokenPair(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.setRefreshCookie(c, refresh)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: access,
		ExpiresIn:   int64(expiresIn / time.Second),
		User:        dto.ToUserResponse(user),
	})
}

// login godoc
// @Summary      Log in with email and password
// @Description  Verifies credentials and returns an access token; the refresh token is set as an HTTP-only cookie.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      dto.LoginRequest  true  "Login credentials"
// @Success      200          {object}  dto.AuthResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Router       /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithTokenPair(c, user)
}

// refresh godoc
// @Summary      Rotate the refresh token
// @Description  Validates the refresh cookie, rotates it, and returns a fresh access token.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  dto.AuthResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, access, newRefresh, expiresIn, err := h.tokenService.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondWithError(c, err)
		return
	}

	h.setRefreshCookie(c, newRefresh)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken: access,
		ExpiresIn:   int64(expiresIn / time.Second),
		User:        dto.ToUserResponse(user),
	})
}

// logout godoc
// @Summary      Log out
// @Description  Invalidates the stored refresh token and clears the cookie.
// @Tags         Auth
// @Produce      json
// @Success      204  "No Content"
// @Router       /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// The cookie value is "userID.token"; only the prefix is needed to
	// revoke. A missing or malformed cookie still logs the client out.
	if refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && refreshToken != "" {
		if userID, _, found := strings.Cut(refreshToken, "."); found {
			if err := h.tokenService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
				logger.Warn("Failed to clear refresh token", slog.String("error", err.Error()))
			}
		}
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// exchangeGoogleCode godoc
// @Summary      Log in with a Google authorization code
// @Description  Exchanges the OAuth code, links or provisions the staff user, and returns a token pair.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ExchangeCodeRequest  true  "Authorization code"
// @Success      200      {object}  dto.AuthResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /auth/google/exchange [post]
func (h *authHandler) exchangeGoogleCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid code exchange request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	info, err := h.googleOAuth.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetOrCreateGoogleUser(c.Request.Context(), info.Subject, info.Email, info.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.respondWithTokenPair(c, user)
}
