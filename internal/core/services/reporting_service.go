package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ReportingService derives read-only views. Every figure is computed from the
// current snapshot (or the immutable ledger), so re-running a report never
// changes state and always yields the same result for the same data.
type ReportingService struct {
	reportingRepo     portsrepo.ReportingRepository
	lowStockThreshold decimal.Decimal
}

func NewReportingService(reportingRepo portsrepo.ReportingRepository, lowStockThreshold int) *ReportingService {
	return &ReportingService{
		reportingRepo:     reportingRepo,
		lowStockThreshold: decimal.NewFromInt(int64(lowStockThreshold)),
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

func (s *ReportingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lowStock, err := s.reportingRepo.CountLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		logger.Error("Failed to count low stock", slog.String("error", err.Error()))
		return nil, err
	}
	debtors, err := s.reportingRepo.CountDebtors(ctx)
	if err != nil {
		logger.Error("Failed to count debtors", slog.String("error", err.Error()))
		return nil, err
	}
	openOrders, err := s.reportingRepo.CountOpenOrders(ctx)
	if err != nil {
		logger.Error("Failed to count open orders", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	salesToday, salesCount, err := s.reportingRepo.SalesTotalBetween(ctx, midnight, now)
	if err != nil {
		logger.Error("Failed to sum today's sales", slog.String("error", err.Error()))
		return nil, err
	}

	return &domain.DashboardSummary{
		LowStockCount:   lowStock,
		DebtorCount:     debtors,
		OpenOrderCount:  openOrders,
		SalesToday:      salesToday,
		SalesCountToday: salesCount,
	}, nil
}

func (s *ReportingService) SalesByHour(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error) {
	buckets, err := s.reportingRepo.GetSalesByHour(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to get hourly sales", slog.String("error", err.Error()))
		return nil, err
	}
	if buckets == nil {
		return []domain.SalesBucket{}, nil
	}
	return buckets, nil
}

func (s *ReportingService) SalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error) {
	buckets, err := s.reportingRepo.GetSalesByDay(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to get daily sales", slog.String("error", err.Error()))
		return nil, err
	}
	if buckets == nil {
		return []domain.SalesBucket{}, nil
	}
	return buckets, nil
}

// ProductSales aggregates sold quantity, revenue and profit per product in
// the period, ordered by revenue descending.
func (s *ReportingService) ProductSales(ctx context.Context, from, to time.Time, top int) ([]domain.ProductSales, error) {
	items, err := s.reportingRepo.GetSaleItems(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to get sale items", slog.String("error", err.Error()))
		return nil, err
	}
	return AggregateProductSales(items, top), nil
}

// AggregateProductSales folds sale line items into per-product totals,
// ordered by revenue descending (product ID breaks ties so the result does
// not depend on input order). A non-positive top means no limit.
func AggregateProductSales(items []domain.TransactionItem, top int) []domain.ProductSales {
	byProduct := map[string]*domain.ProductSales{}
	for _, item := range items {
		agg, ok := byProduct[item.ProductID]
		if !ok {
			agg = &domain.ProductSales{ProductID: item.ProductID, Name: item.Name}
			byProduct[item.ProductID] = agg
		}
		agg.Quantity = agg.Quantity.Add(item.Quantity)
		agg.Revenue = agg.Revenue.Add(item.UnitPrice.Mul(item.Quantity))
		agg.Profit = agg.Profit.Add(item.Profit())
	}

	rows := make([]domain.ProductSales, 0, len(byProduct))
	for _, agg := range byProduct {
		rows = append(rows, *agg)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	return rows
}
