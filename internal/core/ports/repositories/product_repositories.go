package repositories

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductRepositoryFacade persists products and their stock movements.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	// FindProductsByIDs returns the products keyed by ID; absent IDs are
	// simply missing from the map.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeactivateProduct(ctx context.Context, productID string, updatedBy string) error
	// ReceiveStock atomically increments the product's stock and, when
	// expense is non-nil, records the purchase in the ledger. Either both
	// writes commit or neither does.
	ReceiveStock(ctx context.Context, productID string, stockDelta decimal.Decimal, expense *domain.Transaction, updatedBy string) error
}
