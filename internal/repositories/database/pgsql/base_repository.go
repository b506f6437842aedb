package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bookhub_loan_service/internal/apperrors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres    = "postgres"
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	statusInternalCode = 500
)

// dialect builds prepared ($n placeholder) statements for pgx.
var dialect = goqu.Dialect(dialectPostgres)

// sqlBuilder is implemented by every goqu dataset.
type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Ping checks that the database is reachable.
func (r *BaseRepository) Ping(ctx context.Context) error {
	if err := r.Pool.Ping(ctx); err != nil {
		return apperrors.NewAppError(statusInternalCode, "database unreachable", err)
	}
	return nil
}

// build renders a goqu dataset to SQL and its arguments.
func build(ds sqlBuilder) (string, []interface{}, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, apperrors.NewAppError(statusInternalCode, "failed to build query", err)
	}
	return query, args, nil
}

// count runs a SELECT COUNT(*) dataset and returns the scalar.
func (r *BaseRepository) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	query, args, err := build(ds)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return int(n), nil
}

// pgErrorCode returns the SQLSTATE of a PostgreSQL error, or "".
func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
