// internal/core/ports/database.go
package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the parameterized-query surface the item repositories consume.
// Both *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Database defines the port for database operations, abstracting away the
// concrete pgxpool implementation from callers that need basic DB access.
type Database interface {
	Querier
	Pool() *pgxpool.Pool
	Close()
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
}
