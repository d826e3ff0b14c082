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
)

type SupplierService struct {
	supplierRepo portsrepo.SupplierRepositoryFacade
}

func NewSupplierService(supplierRepo portsrepo.SupplierRepositoryFacade) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

var _ portssvc.SupplierSvcFacade = (*SupplierService)(nil)

func (s *SupplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := supplier.Validate(); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		logger.Error("Failed to save supplier in repository", slog.String("error", err.Error()), slog.String("supplier_id", supplier.SupplierID))
		return nil, err
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

func (s *SupplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find supplier by ID", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		}
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) ListSuppliers(ctx context.Context, params dto.ListSuppliersParams) ([]domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	suppliers, err := s.supplierRepo.ListSuppliers(ctx, params.Limit, params.Offset, params.IncludeInactive)
	if err != nil {
		logger.Error("Failed to list suppliers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		return []domain.Supplier{}, nil
	}
	return suppliers, nil
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, userID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplier, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	supplier.LastUpdatedAt = time.Now()
	supplier.LastUpdatedBy = userID

	if err := supplier.Validate(); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		logger.Error("Failed to update supplier", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		return nil, err
	}

	logger.Info("Supplier updated", slog.String("supplier_id", supplierID))
	return supplier, nil
}

func (s *SupplierService) DeactivateSupplier(ctx context.Context, supplierID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.supplierRepo.DeactivateSupplier(ctx, supplierID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate supplier", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		}
		return err
	}

	logger.Info("Supplier deactivated", slog.String("supplier_id", supplierID))
	return nil
}
