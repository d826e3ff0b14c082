package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository carries the shared pool and the transaction helpers every
// repository builds its multi-statement writes on.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new transaction on the shared pool.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits the transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls the transaction back. Safe to defer unconditionally: rolling
// back an already-committed transaction yields sql.ErrTxDone, which is not an
// error here.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return apperrors.NewAppError(500, "failed to rollback transaction", err)
}
