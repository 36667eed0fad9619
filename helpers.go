package herokupg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const defaultRollbackTimeout = 5 * time.Second

// HealthStatus is the JSON payload returned by HealthCheck.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthCheck pings the database and reports a status payload shaped for
// health endpoints. The Database field is a fixed label, so handlers can
// expose the payload without leaking connection details.
func HealthCheck(ctx context.Context, db DB) (*HealthStatus, error) {
	if err := db.Ping(ctx); err != nil {
		return nil, &SafeError{msg: "herokupg: health check failed", cause: err}
	}
	return &HealthStatus{Status: "ok", Database: "heroku-postgres"}, nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error or panics; the panic
// is re-raised after the rollback.
func WithTx(ctx context.Context, db DB, opts pgx.TxOptions, fn func(pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return &SafeError{msg: "herokupg: begin tx failed", cause: err}
	}

	// Rollback gets its own context so it still runs when the caller's
	// context is already canceled, with a deadline so it cannot hang.
	rollback := func() {
		rbCtx, cancel := context.WithTimeout(context.Background(), defaultRollbackTimeout)
		defer cancel()
		_ = tx.Rollback(rbCtx)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
		if err != nil {
			rollback()
		}
	}()

	err = fn(tx)
	if err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return &SafeError{msg: "herokupg: commit tx failed", cause: err}
	}
	return nil
}
