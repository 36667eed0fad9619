package herokupg

import (
	"database/sql"

	"github.com/jackc/pgx/v5/stdlib"
)

// OpenDB returns a database/sql handle for code built on the standard
// interface: ORMs, migration tools, libraries that expect *sql.DB. URL
// validation and the trust policy are identical to GetClient; the prepared
// config is registered with pgx's stdlib driver.
//
// Each call adds one driver registration that lives for the rest of the
// process, so OpenDB suits long-lived handles, not per-request opens.
//
// OpenDB does not ping. database/sql opens connections lazily, so
// connectivity problems surface on first use; callers that want an eager
// check can PingContext themselves.
func OpenDB(databaseURL string, opts ...Option) (*sql.DB, error) {
	db, _, err := openDB(databaseURL, opts...)
	return db, err
}

// openDB also returns the driver registration name so scoped callers can
// unregister once the handle is closed.
func openDB(databaseURL string, opts ...Option) (*sql.DB, string, error) {
	o := applyOptions(opts)

	pgxCfg, _, err := buildConnConfig(Config{ConnectionString: databaseURL}, o)
	if err != nil {
		return nil, "", err
	}

	name := stdlib.RegisterConnConfig(pgxCfg)
	db, err := sql.Open("pgx", name)
	if err != nil {
		stdlib.UnregisterConnConfig(name)
		return nil, "", err
	}
	return db, name, nil
}
