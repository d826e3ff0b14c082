package services

import (
	"context"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
)

// ReportingSvcFacade serves read-only derived views of the entity snapshot.
type ReportingSvcFacade interface {
	DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error)
	SalesByHour(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error)
	// ProductSales aggregates sold quantity, revenue and profit per product,
	// ordered by revenue descending, limited to top entries.
	ProductSales(ctx context.Context, from, to time.Time, top int) ([]domain.ProductSales, error)
}
