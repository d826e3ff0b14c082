package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService struct {
	productRepo  portsrepo.ProductRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
	publisher    portssvc.EventPublisher
}

func NewProductService(productRepo portsrepo.ProductRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade, publisher portssvc.EventPublisher) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		publisher:    publisher,
	}
}

var _ portssvc.ProductSvcFacade = (*ProductService)(nil)

func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	baseUnitSize := decimal.NewFromInt(1)
	if req.BaseUnitSize != nil {
		baseUnitSize = *req.BaseUnitSize
	}

	product := domain.Product{
		ProductID:    uuid.NewString(),
		Name:         req.Name,
		Category:     req.Category,
		CostPrice:    req.CostPrice,
		UnitPrice:    req.UnitPrice,
		StockQty:     req.StockQty,
		SaleType:     req.SaleType,
		BaseUnitSize: baseUnitSize,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product in repository", slog.String("error", err.Error()), slog.String("product_id", product.ProductID))
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "products", EntityID: product.ProductID, Action: "created"})
	logger.Info("Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find product by ID", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	products, err := s.productRepo.ListProducts(ctx, params.Limit, params.Offset, params.IncludeInactive)
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.BaseUnitSize != nil {
		product.BaseUnitSize = *req.BaseUnitSize
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = userID

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "products", EntityID: productID, Action: "updated"})
	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

func (s *ProductService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeactivateProduct(ctx, productID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "products", EntityID: productID, Action: "deleted"})
	logger.Info("Product deactivated", slog.String("product_id", productID))
	return nil
}

// ReceiveStock increments the product's stock, scaling dose products by their
// base unit size, and records the purchase expense atomically with the
// increment when a cost is given.
func (s *ProductService) ReceiveStock(ctx context.Context, productID string, req dto.ReceiveStockRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: restock quantity must be positive", apperrors.ErrValidation)
	}
	if req.TotalCost != nil && req.TotalCost.IsNegative() {
		return nil, fmt.Errorf("%w: restock cost must not be negative", apperrors.ErrValidation)
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, productID)
	}
	if !product.TracksStock() {
		return nil, fmt.Errorf("%w: product %s does not track stock", apperrors.ErrValidation, productID)
	}

	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, *req.SupplierID)
			}
			return nil, err
		}
	}

	stockDelta := product.StockDelta(req.Quantity)

	var expense *domain.Transaction
	if req.TotalCost != nil && req.TotalCost.IsPositive() {
		now := time.Now()
		expense = &domain.Transaction{
			TransactionID: uuid.NewString(),
			Type:          domain.TransactionExpense,
			Total:         *req.TotalCost,
			OccurredAt:    now,
			SupplierID:    req.SupplierID,
			Description:   fmt.Sprintf("Stock received: %s x %s", req.Quantity.String(), product.Name),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.productRepo.ReceiveStock(ctx, productID, stockDelta, expense, userID); err != nil {
		logger.Error("Failed to receive stock", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, err
	}

	updated, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "products", EntityID: productID, Action: "updated"})
	if expense != nil {
		s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "transactions", EntityID: expense.TransactionID, Action: "created"})
	}
	logger.Info("Stock received", slog.String("product_id", productID), slog.String("stock_delta", stockDelta.String()))
	return updated, nil
}
