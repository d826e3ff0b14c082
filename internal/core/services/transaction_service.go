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

type TransactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	supplierRepo    portsrepo.SupplierRepositoryFacade
	publisher       portssvc.EventPublisher
}

func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, supplierRepo portsrepo.SupplierRepositoryFacade, publisher portssvc.EventPublisher) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		supplierRepo:    supplierRepo,
		publisher:       publisher,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// CreateExpense appends a manual expense to the ledger (rent, ice, repairs).
// Stock purchases go through the product restock path instead so the expense
// and the stock increment commit together.
func (s *TransactionService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: expense total must be positive", apperrors.ErrValidation)
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindSupplierByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, *req.SupplierID)
			}
			return nil, err
		}
	}

	now := time.Now()
	expense := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TransactionExpense,
		Total:         req.Total,
		OccurredAt:    now,
		SupplierID:    req.SupplierID,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, expense); err != nil {
		logger.Error("Failed to save expense in repository", slog.String("error", err.Error()), slog.String("transaction_id", expense.TransactionID))
		return nil, err
	}

	s.publisher.Publish(ctx, portssvc.ChangeEvent{Collection: "transactions", EntityID: expense.TransactionID, Action: "created"})
	logger.Info("Expense recorded", slog.String("transaction_id", expense.TransactionID), slog.String("total", req.Total.String()))
	return &expense, nil
}

func (s *TransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.TransactionFilter{
		CustomerID: params.CustomerID,
		SupplierID: params.SupplierID,
		From:       params.From,
		To:         params.To,
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		}
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nextToken, nil
}
