package herokupg

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
)

const smokeCleanupTimeout = 5 * time.Second

// SmokeTest verifies that db can do real work, not just answer a ping: it
// creates a scratch table, writes one row, reads it back, and drops the
// table. Useful as a post-deploy check that the credential has DDL and DML
// rights on the attached database.
//
// The table name carries a random suffix so concurrent runs and leftovers
// from crashed ones never collide. The drop runs on a background context:
// the scratch table is released even when ctx is already canceled by the
// time a step fails.
func SmokeTest(ctx context.Context, db DB) error {
	table := "herokupg_smoke_" + xid.New().String()

	dropped := false
	defer func() {
		if dropped {
			return
		}
		cleanupCtx, cancelCleanup := context.WithTimeout(context.Background(), smokeCleanupTimeout)
		defer cancelCleanup()
		_, _ = db.Exec(cleanupCtx, "DROP TABLE IF EXISTS "+table)
	}()

	if _, err := db.Exec(ctx, fmt.Sprintf(
		"CREATE TABLE %s (id SERIAL PRIMARY KEY, name TEXT NOT NULL, data BYTEA)", table,
	)); err != nil {
		return &SafeError{msg: "herokupg: smoke test could not create scratch table", cause: err}
	}

	if _, err := db.Exec(ctx, fmt.Sprintf(
		"INSERT INTO %s (name, data) VALUES ($1, $2)", table,
	), "connectivity", []byte(nil)); err != nil {
		return &SafeError{msg: "herokupg: smoke test could not insert", cause: err}
	}

	var (
		name string
		data []byte
	)
	if err := db.QueryRow(ctx, fmt.Sprintf(
		"SELECT name, data FROM %s", table,
	)).Scan(&name, &data); err != nil {
		return &SafeError{msg: "herokupg: smoke test could not read back", cause: err}
	}
	if name != "connectivity" || data != nil {
		return &SafeError{msg: fmt.Sprintf("herokupg: smoke test read back (%q, %d bytes), want (%q, NULL)", name, len(data), "connectivity")}
	}

	if _, err := db.Exec(ctx, "DROP TABLE "+table); err != nil {
		return &SafeError{msg: "herokupg: smoke test could not drop scratch table", cause: err}
	}
	dropped = true

	return nil
}
