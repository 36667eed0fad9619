package herokupg

import "time"

// Config controls Connect and ConnectPool beyond the URL itself. The zero
// value of every knob means "use the default documented on it".
type Config struct {
	// ConnectionString is the database URL, normally the value of the
	// DATABASE_URL config var.
	ConnectionString string

	// TrustPolicy overrides how the transport treats the server certificate.
	// nil means DefaultTrustPolicy: encrypted, unverified.
	TrustPolicy *TrustPolicy

	// ConnectTimeout defaults to 10s.
	ConnectTimeout time.Duration

	// TransactionPoolerMode prepares connections for Heroku's server-side
	// connection pooling, which runs pgbouncer in transaction mode: simple
	// query protocol, statement and description caches disabled.
	TransactionPoolerMode bool

	// MaxConns defaults to 10. Pool constructors only.
	MaxConns int32

	// MinConns defaults to 0. Pool constructors only.
	MinConns int32

	// HealthChecksDisabled disables idle-connection health checks.
	// Pool constructors only.
	HealthChecksDisabled bool

	// HealthCheckPeriod defaults to 30s when health checks are enabled.
	// Pool constructors only.
	HealthCheckPeriod time.Duration

	// MaxConnLifetime defaults to 30m. Pool constructors only.
	MaxConnLifetime time.Duration

	// MaxConnIdleTime defaults to 5m. Pool constructors only.
	MaxConnIdleTime time.Duration
}
