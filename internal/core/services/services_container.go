package services

import (
	"github.com/boteco-app/boteco-backend/internal/ai"
	"github.com/boteco-app/boteco-backend/internal/cache"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/platform/config"
)

// NewServiceContainer wires all services with their repository and platform
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, store cache.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo, repos.SupplierRepo, publisher)
	container.Customer = NewCustomerService(repos.CustomerRepo, publisher)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.Order = NewOrderService(repos.OrderRepo, repos.ProductRepo, repos.CustomerRepo, publisher)
	container.Settlement = NewSettlementService(repos.OrderRepo, repos.ProductRepo, repos.CustomerRepo, publisher)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.SupplierRepo, publisher)
	container.Reporting = NewReportingService(repos.ReportingRepo, cfg.LowStockThreshold)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User, repos.UserRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	// Leave Insight nil when no API key is configured; the handler maps a
	// missing service to 503.
	if insight := ai.NewInsightService(cfg.OpenAIAPIKey, cfg.OpenAIModel, container.Reporting, store); insight != nil {
		container.Insight = insight
	}

	return container
}
