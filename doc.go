// Package herokupg connects Go applications to Heroku-managed Postgres using
// pgx v5. One call takes a DATABASE_URL credential to a live, encrypted,
// authenticated handle: URL parsing, trust policy, TCP, TLS, and startup.
//
// The package keeps a few promises throughout:
//
//   - Connections are encrypted; plaintext and plaintext fallbacks are
//     rejected unless a caller-built TrustPolicy disables encryption.
//   - The trust policy is the only TLS authority; an sslmode URL parameter
//     never silently changes transport security.
//   - By default the server certificate is accepted unverified, because
//     Heroku terminates TLS with certificates that fail chain and hostname
//     checks; verification is opt-in per connection.
//   - Connect-path errors are safe to log. The password and the raw URL
//     never appear in an error message.
//   - Construction is all-or-nothing; on error no socket, pool, or scratch
//     resource stays live.
//
// This package is a connection layer, not a data-access layer. Pooling is
// pgxpool, the wire protocol is pgx, queries and schema are the caller's.
package herokupg
