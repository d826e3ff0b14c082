package repositories

import (
	"context"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
)

// TransactionFilter narrows ledger listings. Nil fields match everything.
type TransactionFilter struct {
	Type       *domain.TransactionType
	CustomerID *string
	SupplierID *string
	From       *time.Time
	To         *time.Time
}

// TransactionRepositoryFacade appends to and reads the ledger. There is
// deliberately no update or delete: ledger entries are immutable history.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
