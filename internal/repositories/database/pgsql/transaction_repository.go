package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portsrepo "github.com/boteco-app/boteco-backend/internal/core/ports/repositories"
	"github.com/boteco-app/boteco-backend/internal/models"
	"github.com/boteco-app/boteco-backend/internal/utils/mapping"
	"github.com/boteco-app/boteco-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, type, total, occurred_at, customer_id, supplier_id, order_id, payment_method, description, created_at, created_by, last_updated_at, last_updated_by`

// insertTransactionTx appends one ledger entry (header plus item snapshot)
// inside an existing transaction. Every atomic write path that produces a
// ledger entry funnels through here so the insert shape stays identical.
func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.Total,
		m.OccurredAt,
		m.CustomerID,
		m.SupplierID,
		m.OrderID,
		m.PaymentMethod,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	items := mapping.ToModelTransactionItems(txn.TransactionID, txn.Items)
	if len(items) == 0 {
		return nil
	}

	itemQuery := `
		INSERT INTO transaction_items (transaction_id, line_no, product_id, name, quantity, unit_price, cost_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(itemQuery, item.TransactionID, item.LineNo, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.CostPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("failed to insert transaction item %d for %s: %w", i+1, m.TransactionID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close transaction item batch for %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction appends a standalone ledger entry (manual expenses).
// Settlements and payments write their entries inside their own atomic
// commits instead of calling this.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) loadItems(ctx context.Context, transactionIDs []string) (map[string][]models.TransactionItem, error) {
	if len(transactionIDs) == 0 {
		return map[string][]models.TransactionItem{}, nil
	}

	query := `
		SELECT transaction_id, line_no, product_id, name, quantity, unit_price, cost_price
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	itemsByTxn := make(map[string][]models.TransactionItem)
	for rows.Next() {
		var item models.TransactionItem
		if err := rows.Scan(&item.TransactionID, &item.LineNo, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice, &item.CostPrice); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		itemsByTxn[item.TransactionID] = append(itemsByTxn[item.TransactionID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", err)
	}
	return itemsByTxn, nil
}

// FindTransactionByID retrieves one ledger entry with its item snapshot.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.Type,
		&m.Total,
		&m.OccurredAt,
		&m.CustomerID,
		&m.SupplierID,
		&m.OrderID,
		&m.PaymentMethod,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	itemsByTxn, err := r.loadItems(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainTransaction(m, itemsByTxn[transactionID])
	return &d, nil
}

// ListTransactions pages through the ledger newest first, using a
// (occurred_at, transaction_id) cursor token.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []interface{}{}
	argN := 1

	appendArg := func(clause string, value interface{}) {
		query += fmt.Sprintf(clause, argN)
		args = append(args, value)
		argN++
	}

	if filter.Type != nil {
		appendArg(" AND type = $%d", string(*filter.Type))
	}
	if filter.CustomerID != nil {
		appendArg(" AND customer_id = $%d", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		appendArg(" AND supplier_id = $%d", *filter.SupplierID)
	}
	if filter.From != nil {
		appendArg(" AND occurred_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		appendArg(" AND occurred_at < $%d", *filter.To)
	}

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (occurred_at, transaction_id) < ($%d, $%d)", argN, argN+1)
		args = append(args, cursorAt, cursorID)
		argN += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, transaction_id DESC LIMIT $%d;", argN)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	headers := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.Type,
			&m.Total,
			&m.OccurredAt,
			&m.CustomerID,
			&m.SupplierID,
			&m.OrderID,
			&m.PaymentMethod,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var newNextToken *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeCursor(last.OccurredAt, last.TransactionID)
		newNextToken = &token
	}

	ids := make([]string, len(headers))
	for i, m := range headers {
		ids[i] = m.TransactionID
	}
	itemsByTxn, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	txns := make([]domain.Transaction, len(headers))
	for i, m := range headers {
		txns[i] = mapping.ToDomainTransaction(m, itemsByTxn[m.TransactionID])
	}
	return txns, newNextToken, nil
}
