package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	"github.com/boteco-app/boteco-backend/internal/models"
	"github.com/boteco-app/boteco-backend/internal/utils/mapping"
	"github.com/boteco-app/boteco-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepositoryFacade = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, display_name, customer_id, total, status, closed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID,
		&m.DisplayName,
		&m.CustomerID,
		&m.Total,
		&m.Status,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertOrderTx(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	m := mapping.ToModelOrder(order)

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.OrderID,
		m.DisplayName,
		m.CustomerID,
		m.Total,
		m.Status,
		m.ClosedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: order with ID %s already exists", apperrors.ErrDuplicate, m.OrderID)
			case "23503":
				return fmt.Errorf("%w: customer referenced by order %s does not exist", apperrors.ErrNotFound, m.OrderID)
			}
		}
		return fmt.Errorf("failed to save order %s: %w", m.OrderID, err)
	}

	return insertOrderItemsTx(ctx, tx, order.OrderID, order.Items)
}

func insertOrderItemsTx(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	rows := mapping.ToModelOrderItems(orderID, items)
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, line_no, product_id, name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range rows {
		batch.Queue(query, item.OrderID, item.LineNo, item.ProductID, item.Name, item.Quantity, item.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("failed to insert order item %d for %s: %w", i+1, orderID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close order item batch for %s: %w", orderID, err)
	}
	return nil
}

// SaveOrder inserts a new order with its items.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := insertOrderTx(ctx, tx, order); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveOrderWithCustomer atomically creates a new customer and an order
// referencing it. Either both rows exist afterwards or neither does.
func (r *PgxOrderRepository) SaveOrderWithCustomer(ctx context.Context, order domain.Order, customer domain.Customer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := insertCustomerTx(ctx, tx, customer); err != nil {
		return err
	}
	if err := insertOrderTx(ctx, tx, order); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxOrderRepository) loadOrderItems(ctx context.Context, orderIDs []string) (map[string][]models.OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[string][]models.OrderItem{}, nil
	}

	query := `
		SELECT order_id, line_no, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]models.OrderItem)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.OrderID, &item.LineNo, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}
	return itemsByOrder, nil
}

// FindOrderByID retrieves an order with its items.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	itemsByOrder, err := r.loadOrderItems(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainOrder(m, itemsByOrder[orderID])
	return &d, nil
}

// ListOrders pages through orders newest first, optionally filtered by
// status, using a (created_at, order_id) cursor token.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, status *domain.OrderStatus, limit int, nextToken *string) ([]domain.Order, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	argN := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, string(*status))
		argN++
	}

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (created_at, order_id) < ($%d, $%d)", argN, argN+1)
		args = append(args, cursorAt, cursorID)
		argN += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, order_id DESC LIMIT $%d;", argN)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	headers := []models.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	var newNextToken *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.OrderID)
		newNextToken = &token
	}

	ids := make([]string, len(headers))
	for i, m := range headers {
		ids[i] = m.OrderID
	}
	itemsByOrder, err := r.loadOrderItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	orders := make([]domain.Order, len(headers))
	for i, m := range headers {
		orders[i] = mapping.ToDomainOrder(m, itemsByOrder[m.OrderID])
	}
	return orders, newNextToken, nil
}

// ReplaceOrderItems swaps the order's item list and total. The header update
// is guarded on status = OPEN so a settlement that races this write loses
// nothing.
func (r *PgxOrderRepository) ReplaceOrderItems(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	m := mapping.ToModelOrder(order)
	query := `
		UPDATE orders
		SET total = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1 AND status = 'OPEN';
	`
	cmdTag, err := tx.Exec(ctx, query, m.OrderID, m.Total, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update order %s for item replace: %w", m.OrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.openGuardError(ctx, m.OrderID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1;`, m.OrderID); err != nil {
		return fmt.Errorf("failed to clear order items for %s: %w", m.OrderID, err)
	}
	if err := insertOrderItemsTx(ctx, tx, order.OrderID, order.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateOrderCustomer reassigns (or detaches) the customer on an open order.
func (r *PgxOrderRepository) UpdateOrderCustomer(ctx context.Context, orderID string, customerID *string, displayName string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET customer_id = $2, display_name = $3, last_updated_at = $4, last_updated_by = $5
		WHERE order_id = $1 AND status = 'OPEN';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, orderID, customerID, displayName, updatedAt, updatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: customer %v does not exist", apperrors.ErrNotFound, customerID)
		}
		return fmt.Errorf("failed to reassign customer on order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.openGuardError(ctx, orderID)
	}
	return nil
}

// DeleteOpenOrder removes an order iff it is still open. A closed order is
// settlement history; to the discard path it no longer exists as a deletable
// tab, so both closed and absent resolve to not found.
func (r *PgxOrderRepository) DeleteOpenOrder(ctx context.Context, orderID string) error {
	// order_items cascade on delete.
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1 AND status = 'OPEN';`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: no open order %s", apperrors.ErrNotFound, orderID)
	}
	return nil
}

// openGuardError resolves why a status = OPEN guard matched nothing: the
// order is either absent or already closed.
func (r *PgxOrderRepository) openGuardError(ctx context.Context, orderID string) error {
	var status models.OrderStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM orders WHERE order_id = $1`, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to check order status for %s: %w", orderID, err)
	}
	return fmt.Errorf("%w: order %s is already closed", apperrors.ErrInvalidState, orderID)
}

// SettleOrder commits the whole settlement in one transaction: close the
// order, decrement stock per product under a non-negativity guard, apply the
// optional fiado charge under the credit limit guard, and append the SALE
// ledger entry. Any guard failure rolls the whole thing back.
func (r *PgxOrderRepository) SettleOrder(ctx context.Context, order domain.Order, sale domain.Transaction, stockDeltas map[string]decimal.Decimal, charge *portsrepo.CustomerCharge) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	m := mapping.ToModelOrder(order)
	closeQuery := `
		UPDATE orders
		SET status = 'CLOSED', closed_at = $2, total = $3, last_updated_at = $4, last_updated_by = $5
		WHERE order_id = $1 AND status = 'OPEN';
	`
	cmdTag, err := tx.Exec(ctx, closeQuery, m.OrderID, m.ClosedAt, m.Total, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to close order %s: %w", m.OrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.openGuardError(ctx, m.OrderID)
	}

	// Deterministic lock order across concurrent settlements.
	productIDs := make([]string, 0, len(stockDeltas))
	for id := range stockDeltas {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	stockQuery := `
		UPDATE products
		SET stock_qty = stock_qty - $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1 AND stock_qty >= $2;
	`
	for _, productID := range productIDs {
		delta := stockDeltas[productID]
		if delta.IsZero() {
			continue
		}
		cmdTag, err := tx.Exec(ctx, stockQuery, productID, delta, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			if findErr := tx.QueryRow(ctx, `SELECT 1 FROM products WHERE product_id = $1`, productID).Scan(new(int)); errors.Is(findErr, pgx.ErrNoRows) {
				return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
			}
			return fmt.Errorf("%w: product %s has less than %s in stock", apperrors.ErrInsufficientStock, productID, delta.String())
		}
	}

	if charge != nil {
		chargeQuery := `
			UPDATE customers
			SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
			WHERE customer_id = $1 AND is_active = TRUE
			  AND (credit_limit IS NULL OR balance + $2 <= credit_limit);
		`
		cmdTag, err := tx.Exec(ctx, chargeQuery, charge.CustomerID, charge.Amount, m.LastUpdatedAt, m.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to charge customer %s: %w", charge.CustomerID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			if findErr := tx.QueryRow(ctx, `SELECT 1 FROM customers WHERE customer_id = $1 AND is_active = TRUE`, charge.CustomerID).Scan(new(int)); errors.Is(findErr, pgx.ErrNoRows) {
				return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, charge.CustomerID)
			}
			return fmt.Errorf("%w: charging %s would exceed the credit limit for customer %s", apperrors.ErrCreditLimitExceeded, charge.Amount.String(), charge.CustomerID)
		}
	}

	if err := insertTransactionTx(ctx, tx, sale); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
