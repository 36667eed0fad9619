package herokupg

import (
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
)

// MigrateUp applies every pending migration in fsys under dir (typically an
// embed.FS holding .sql files) to the database at databaseURL.
//
// The connection goes through the same trust-policy pipeline as every other
// constructor, so migration traffic gets no weaker transport security than
// application traffic. A database already at the latest version is not an
// error.
func MigrateUp(databaseURL string, fsys fs.FS, dir string, opts ...Option) error {
	db, reg, err := openDB(databaseURL, opts...)
	if err != nil {
		return err
	}
	// Deferred in reverse order: the handle closes before its driver
	// registration is released.
	defer stdlib.UnregisterConnConfig(reg)
	defer db.Close()

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return &SafeError{msg: "herokupg: migrations are not readable", cause: err}
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		// SECURITY: driver init connects; its error may carry connection
		// detail. Keep the outer message safe.
		return &SafeError{msg: "herokupg: migrate driver init failed", cause: err}
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return &SafeError{msg: "herokupg: migrate init failed", cause: err}
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return &SafeError{msg: "herokupg: migrations failed", cause: err}
	}

	return nil
}
