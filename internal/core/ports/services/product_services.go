package services

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/dto"
)

// ProductSvcFacade manages the product catalog and stock replenishment.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error
	// ReceiveStock increments stock (scaled by base unit size) and, when a
	// cost is given, records the expense atomically with the increment.
	ReceiveStock(ctx context.Context, productID string, req dto.ReceiveStockRequest, userID string) (*domain.Product, error)
}
