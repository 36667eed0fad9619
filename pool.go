package herokupg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the pooled DB implementation returned by GetPool and ConnectPool.
// It wraps (rather than embeds) *pgxpool.Pool, so only the DB surface plus a
// few operational extras are exposed.
type Pool struct {
	pool   *pgxpool.Pool
	params ConnectionParams
}

var _ DB = (*Pool)(nil)

// Params returns the parsed connection parameters. The Password field is
// populated and must be treated as secret material.
func (p *Pool) Params() ConnectionParams {
	return p.params
}

// Stat returns a snapshot of pool statistics.
func (p *Pool) Stat() *pgxpool.Stat {
	return p.pool.Stat()
}

func (p *Pool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p *Pool) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.pool.Begin(ctx)
}

func (p *Pool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return p.pool.BeginTx(ctx, txOptions)
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close drains the pool and releases every connection. pgxpool drives its
// own shutdown, so ctx goes unused and the error is always nil; the
// signature exists to satisfy DB.
func (p *Pool) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}
