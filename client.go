package herokupg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Client is a single authenticated session, the concrete DB implementation
// returned by GetClient and Connect. It intentionally wraps (does not embed)
// *pgx.Conn.
//
// A Client is one Postgres session and is not safe for concurrent use; code
// shared by multiple goroutines should hold a Pool instead.
type Client struct {
	conn   *pgx.Conn
	params ConnectionParams
}

var _ DB = (*Client)(nil)

// Params returns the parsed connection parameters. The Password field is
// populated and must be treated as secret material.
func (c *Client) Params() ConnectionParams {
	return c.params
}

func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c *Client) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

func (c *Client) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.conn.Begin(ctx)
}

func (c *Client) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return c.conn.BeginTx(ctx, txOptions)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// Close terminates the session and releases the socket. The Client is
// unusable afterward.
func (c *Client) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}
