package services

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/boteco-app/boteco-backend/internal/dto"
)

// TransactionSvcFacade reads the ledger and records manual expenses. Ledger
// entries are append-only; there is no update or delete.
type TransactionSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}
