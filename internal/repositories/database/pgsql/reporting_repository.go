package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a read-only repository for aggregations.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CountLowStock counts active stock-tracked products at or below the
// threshold. SERVICE products have no stock and never count.
func (r *PgxReportingRepository) CountLowStock(ctx context.Context, threshold decimal.Decimal) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE is_active = TRUE AND sale_type <> 'SERVICE' AND stock_qty <= $1;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}

// CountDebtors counts active customers with a positive balance.
func (r *PgxReportingRepository) CountDebtors(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE is_active = TRUE AND balance > 0;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count debtors: %w", err)
	}
	return count, nil
}

// CountOpenOrders counts currently open tabs.
func (r *PgxReportingRepository) CountOpenOrders(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = 'OPEN';`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open orders: %w", err)
	}
	return count, nil
}

// SalesTotalBetween sums SALE ledger entries in [from, to).
func (r *PgxReportingRepository) SalesTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM transactions
		WHERE type = 'SALE' AND occurred_at >= $1 AND occurred_at < $2;
	`
	var total decimal.Decimal
	var count int
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum sales between %s and %s: %w", from, to, err)
	}
	return total, count, nil
}

func (r *PgxReportingRepository) salesBuckets(ctx context.Context, truncUnit string, from, to time.Time) ([]domain.SalesBucket, error) {
	// truncUnit is a constant supplied by the callers below, never user input.
	query := fmt.Sprintf(`
		SELECT date_trunc('%s', occurred_at) AS bucket, COALESCE(SUM(total), 0), COUNT(*)
		FROM transactions
		WHERE type = 'SALE' AND occurred_at >= $1 AND occurred_at < $2
		GROUP BY bucket
		ORDER BY bucket;
	`, truncUnit)

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales histogram (%s): %w", truncUnit, err)
	}
	defer rows.Close()

	buckets := []domain.SalesBucket{}
	for rows.Next() {
		var b domain.SalesBucket
		if err := rows.Scan(&b.Bucket, &b.Total, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan sales bucket row: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales bucket rows: %w", err)
	}
	return buckets, nil
}

// GetSalesByHour buckets sales totals per hour in [from, to).
func (r *PgxReportingRepository) GetSalesByHour(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error) {
	return r.salesBuckets(ctx, "hour", from, to)
}

// GetSalesByDay buckets sales totals per day in [from, to).
func (r *PgxReportingRepository) GetSalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesBucket, error) {
	return r.salesBuckets(ctx, "day", from, to)
}

// GetSaleItems returns the flattened SALE line items in [from, to). The
// reporting service folds them into per-product views.
func (r *PgxReportingRepository) GetSaleItems(ctx context.Context, from, to time.Time) ([]domain.TransactionItem, error) {
	query := `
		SELECT ti.product_id, ti.name, ti.quantity, ti.unit_price, ti.cost_price
		FROM transaction_items ti
		JOIN transactions t ON t.transaction_id = ti.transaction_id
		WHERE t.type = 'SALE' AND t.occurred_at >= $1 AND t.occurred_at < $2;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	items := []domain.TransactionItem{}
	for rows.Next() {
		var item domain.TransactionItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice, &item.CostPrice); err != nil {
			return nil, fmt.Errorf("failed to scan sale item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale item rows: %w", err)
	}
	return items, nil
}
