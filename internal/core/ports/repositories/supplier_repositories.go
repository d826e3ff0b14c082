package repositories

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
)

// SupplierRepositoryFacade persists suppliers.
type SupplierRepositoryFacade interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	DeactivateSupplier(ctx context.Context, supplierID string, updatedBy string) error
}
