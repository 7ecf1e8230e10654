// Package database implements output.Store on PostgreSQL with pgx.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubxp/internal/domain"
	"clubxp/internal/ports/output"
)

var _ output.Store = (*Store)(nil)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db   DBTX
	pool *pgxpool.Pool // nil inside a transaction
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

// WithinTx runs fn in a read-committed transaction. Row locks taken with
// LockEvent serialize writers on the same event.
func (s *Store) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(&Store{db: tx})
	})
	return wrap("transaction", err)
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrap turns driver failures into persistence errors and passes domain
// errors through untouched.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.Code(err) != "" {
		return err
	}
	return domain.Persistence(fmt.Errorf("%s: %w", op, err))
}
