package repositories

import (
	"context"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository serves read-only aggregations over the entity snapshot.
// Nothing here mutates state.
type ReportingRepository interface {
	CountLowStock(ctx context.Context, threshold decimal.Decimal) (int, error)
	CountDebtors(ctx context.Context) (int, error)
	CountOpenOrders(ctx context.Context) (int, error)
	SalesTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error)
	GetSalesByHour(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error)
	GetSalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error)
	// GetSaleItems returns the flattened SALE line items in a period; the
	// reporting service aggregates them into top-product and profit views.
	GetSaleItems(ctx context.Context, from, to time.Time) ([]domain.TransactionItem, error)
}
