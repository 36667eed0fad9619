package herokupg

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SafeError wraps a cause with an error string safe for default production
// logging. The wrapped cause may still contain sensitive detail.
type SafeError struct {
	msg   string
	cause error
}

func (e *SafeError) Error() string { return e.msg }
func (e *SafeError) Unwrap() error { return e.cause }

// ParseError reports a connection URL that could not be understood, or one
// whose sslmode contradicts the effective trust policy. It carries no cause:
// upstream parse errors embed the raw URL, credentials included, and must
// never reach a log line.
type ParseError struct {
	// Reason describes the problem without quoting the URL.
	Reason string
}

func (e *ParseError) Error() string { return "herokupg: " + e.Reason }

// TransportError reports that the server could not be reached or dropped the
// connection before the startup completed: DNS failures, refused or timed-out
// dials, resets, and connect failures that fit no narrower category.
type TransportError struct {
	Host  string
	Port  uint16
	cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("herokupg: could not reach %s:%d", e.Host, e.Port)
}

func (e *TransportError) Unwrap() error { return e.cause }

// TLSHandshakeError reports a TLS negotiation that failed after the server was
// reached: a refused SSLRequest, a protocol-level handshake failure, or a
// certificate the trust policy would not accept.
type TLSHandshakeError struct {
	Host  string
	cause error
}

func (e *TLSHandshakeError) Error() string {
	return fmt.Sprintf("herokupg: TLS handshake with %s failed", e.Host)
}

func (e *TLSHandshakeError) Unwrap() error { return e.cause }

// AuthenticationError reports that the server was reached, TLS was negotiated,
// and the startup was then rejected: bad credentials or an unknown database.
type AuthenticationError struct {
	User     string
	Database string
	cause    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("herokupg: authentication failed for user %q on database %q", e.User, e.Database)
}

func (e *AuthenticationError) Unwrap() error { return e.cause }

// classifyConnectError maps a connect-path failure onto one of the exported
// error categories. The cause stays reachable through errors.Is/As; the outer
// message references only host, port, user, and database.
func classifyConnectError(err error, params ConnectionParams) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// The server spoke the protocol and rejected the startup. Class 28
		// covers bad credentials; 3D000 is an unknown database.
		if strings.HasPrefix(pgErr.Code, "28") || pgErr.Code == "3D000" {
			return &AuthenticationError{User: params.User, Database: params.Database, cause: err}
		}
		return &TransportError{Host: params.Host, Port: params.Port, cause: err}
	}

	if isTLSHandshakeCause(err) {
		return &TLSHandshakeError{Host: params.Host, cause: err}
	}

	return &TransportError{Host: params.Host, Port: params.Port, cause: err}
}

// isTLSHandshakeCause reports whether err originates in TLS negotiation
// rather than TCP reachability or the Postgres protocol.
func isTLSHandshakeCause(err error) bool {
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return true
	}
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return true
	}
	var unknownAuthorityErr x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthorityErr) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var certInvalidErr x509.CertificateInvalidError
	if errors.As(err, &certInvalidErr) {
		return true
	}
	var rootsErr x509.SystemRootsError
	if errors.As(err, &rootsErr) {
		return true
	}

	// pgconn reports a server that answered the SSLRequest with a plaintext
	// refusal as message text, not as a typed error.
	return strings.Contains(err.Error(), "server refused TLS connection")
}
