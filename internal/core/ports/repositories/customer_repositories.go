package repositories

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerRepositoryFacade persists customers and their fiado balances.
// Balance mutations only happen through ApplyPayment here or through the
// order repository's settlement; plain UpdateCustomer never touches balance.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Customer, error)
	ListDebtors(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeactivateCustomer(ctx context.Context, customerID string, updatedBy string) error
	// ApplyPayment atomically decrements the customer's balance by amount and
	// appends the PAYMENT ledger entry. The decrement is guarded in SQL
	// (balance >= amount) so a concurrent payment cannot overdraw.
	ApplyPayment(ctx context.Context, customerID string, amount decimal.Decimal, payment domain.Transaction) error
}
