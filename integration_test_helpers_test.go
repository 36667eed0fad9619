//go:build integration

package herokupg

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/xid"
)

// The integration suite runs against the database named by DATABASE_URL. It
// creates and drops schemas and tables as it goes, so point it at a
// disposable database, never at production. The server must accept TLS.

var integrationSchemaPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func requireIntegrationEnv(t *testing.T) string {
	t.Helper()

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		t.Fatal("integration requires environment variable: DATABASE_URL")
	}
	return databaseURL
}

// integrationSchemaName returns a fresh schema name. The xid suffix keeps
// concurrent runs against the same database from colliding.
func integrationSchemaName(t *testing.T) string {
	t.Helper()

	name := "herokupg_it_" + xid.New().String()
	if !integrationSchemaPattern.MatchString(name) {
		t.Fatalf("generated invalid schema name: %q", name)
	}
	return name
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func qualifiedTable(schema, table string) string {
	return quoteIdent(schema) + "." + quoteIdent(table)
}

// sanitizeErrorMessage strips DSNs and password fragments before an error
// reaches test output, which CI systems tend to retain.
var (
	redactDSN      = regexp.MustCompile(`(?i)postgres(?:ql)?://\S+`)
	redactPassword = regexp.MustCompile(`(?i)password=\S+`)
)

func sanitizeErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := redactDSN.ReplaceAllString(err.Error(), "[REDACTED_DSN]")
	return redactPassword.ReplaceAllString(msg, "password=[REDACTED]")
}

func mustNoErr(t *testing.T, err error, operation string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %s", operation, sanitizeErrorMessage(err))
	}
}

func mustIs(t *testing.T, got, want error, operation string) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Fatalf("%s: got=%s want=%v", operation, sanitizeErrorMessage(got), want)
	}
}
