package services

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/dto"
)

// SupplierSvcFacade manages suppliers.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, params dto.ListSuppliersParams) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error)
	DeactivateSupplier(ctx context.Context, supplierID string, userID string) error
}
