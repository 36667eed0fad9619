package herokupg

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestMigrateUp_RejectsBadSchemeBeforeAnythingElse(t *testing.T) {
	t.Parallel()

	err := MigrateUp("mysql://alice:pw@host:3306/app", fstest.MapFS{}, "migrations")
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type=%T, want *ParseError", err)
	}
	assertNoDSNLeak(t, err.Error())
}

func TestMigrateUp_RejectsConflictingSSLMode(t *testing.T) {
	t.Parallel()

	err := MigrateUp(
		"postgres://alice:pw@ec2-1-2-3-4.compute-1.amazonaws.com:5432/d1a2b3?sslmode=disable",
		fstest.MapFS{}, "migrations",
	)
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type=%T, want *ParseError", err)
	}
}

// The migration source is validated before the driver touches the network,
// so a bad path fails fast even with an unreachable database URL.
func TestMigrateUp_ReportsUnreadableMigrations(t *testing.T) {
	t.Parallel()

	fsys, dir := fstest.MapFS{
		"migrations/0001_init.up.sql": &fstest.MapFile{Data: []byte("CREATE TABLE t (id INT)")},
	}, "elsewhere"

	err := MigrateUp("postgres://alice:pw@ec2-1-2-3-4.compute-1.amazonaws.com:5432/d1a2b3", fsys, dir)
	if err == nil {
		t.Fatal("expected error")
	}
	var se *SafeError
	if !errors.As(err, &se) {
		t.Fatalf("error type=%T, want *SafeError", err)
	}
	if !strings.Contains(err.Error(), "herokupg: migrations are not readable") {
		t.Fatalf("error=%q, want an unreadable-migrations report", err.Error())
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("expected wrapped cause to report the missing directory")
	}
	assertNoDSNLeak(t, err.Error())
}
