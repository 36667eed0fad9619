package herokupg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the query contract shared by Client, Pool, and TestDB.
//
// Every method takes a context so cancellation reaches in-flight work: when
// the caller's context ends, pgx interrupts the running query or connection
// attempt where the protocol allows it.
//
// Application code should depend on DB rather than *Client or *Pool. That
// keeps it runnable against either a single session or a pool, and testable
// against TestDB without a server.
//
// Close is part of the contract so shutdown can flow through the same
// interface; operational extras such as pool statistics and parsed
// connection parameters stay on the concrete types.
type DB interface {
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Query runs a statement that returns rows. The caller owns the Rows
	// and must Close them (usually via defer rows.Close()).
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// QueryRow runs a statement expected to return at most one row.
	// Scan reports pgx.ErrNoRows when nothing matched.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// Begin opens a transaction with default options. The caller must end
	// it with Commit or Rollback; WithTx does this bookkeeping for you.
	Begin(ctx context.Context) (pgx.Tx, error)

	// BeginTx opens a transaction with explicit options.
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying session or pool. Call it once, during
	// shutdown.
	Close(ctx context.Context) error
}
