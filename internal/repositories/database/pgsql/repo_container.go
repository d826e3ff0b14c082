package pgsql

import (
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ProductRepo:     newPgxProductRepository(dbPool),
		CustomerRepo:    newPgxCustomerRepository(dbPool),
		SupplierRepo:    newPgxSupplierRepository(dbPool),
		OrderRepo:       newPgxOrderRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
	}
}
