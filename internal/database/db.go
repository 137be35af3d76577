// Package database defines the narrow query surface the repositories and
// seeders talk to. The pgx pool under database/postgres implements it;
// tests substitute in-memory fakes without dragging a driver in.
package database

import (
	"context"
	"database/sql"
)

type DB interface {
	Ping(ctx context.Context) error
	Close() error

	// Exec reports the number of affected rows. Repositories use it to
	// tell an absent row from a successful delete, and a deduplicated
	// posting from a fresh insert.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	// Begin opens a transaction for multi-statement writes, for example
	// replacing a user's extracted skill set in one shot.
	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes the database/sql view of the pool for the migration
	// runner, which drives a plain *sql.DB.
	SQLDB() *sql.DB
}

type Tx interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
