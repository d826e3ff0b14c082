package handlers

import (
	docs "github.com/boteco-app/boteco-backend/cmd/docs"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/boteco-app/boteco-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every endpoint onto the engine: public home and auth
// routes, the authenticated /api/v1 surface, and the Swagger UI outside
// production.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, feed ChangeFeed, pool *pgxpool.Pool) {
	registerHomeRoutes(r, pool, cfg.EnableDBCheck)
	registerAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services, feed)
	setupSwaggerRoutes(r, cfg)
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, feed ChangeFeed) {
	apiV1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerProductRoutes(apiV1, services.Product)
	registerCustomerRoutes(apiV1, services.Customer)
	registerSupplierRoutes(apiV1, services.Supplier)
	registerOrderRoutes(apiV1, services.Order, services.Settlement)
	registerTransactionRoutes(apiV1, services.Transaction)
	registerReportingRoutes(apiV1, services.Reporting)
	registerUserRoutes(apiV1, services.User, middleware.RequireRole(domain.RoleAdmin))
	registerInsightRoutes(apiV1, services.Insight, cfg.InsightRateLimit)
	registerEventRoutes(apiV1, feed)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
