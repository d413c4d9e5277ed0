package database

import (
	"context"
	"database/sql"
)

// Row is a single result row. Satisfied by pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result cursor over pgx.Rows or *sql.Rows.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result reports the outcome of an Exec.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor is what repositories run their SQL against, whatever the driver.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Connection represents an open database connection.
type Connection interface {
	Executor
	Close() error
	// Ping verifies the connection is still alive.
	Ping(ctx context.Context) error
	Driver() Driver
}

// WrapSQLResult adapts a sql.Result.
func WrapSQLResult(r sql.Result) Result {
	return r
}

// WrapSQLRows adapts *sql.Rows to the Rows interface.
func WrapSQLRows(r *sql.Rows) Rows {
	return r
}
