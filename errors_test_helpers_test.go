package herokupg

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

// credentialMarkers are substrings that must never show up in user-facing
// error text. The regexp additionally catches any user:pass@host authority,
// whatever the scheme casing.
var (
	credentialMarkers = []string{"postgres://", "postgresql://", "password="}
	urlAuthorityRE    = regexp.MustCompile(`(?i)postgres(?:ql)?://\S+@`)
)

// assertNoDSNLeak fails the test when msg contains connection-string material.
func assertNoDSNLeak(t *testing.T, msg string) {
	t.Helper()

	lower := strings.ToLower(msg)
	for _, marker := range credentialMarkers {
		if strings.Contains(lower, marker) {
			t.Fatalf("message %q leaks %q", msg, marker)
		}
	}
	if urlAuthorityRE.MatchString(msg) {
		t.Fatalf("message %q leaks URL credentials", msg)
	}
}

// assertSafeErrorWraps checks that err carries a SafeError and that the
// original cause stays reachable through errors.Is.
func assertSafeErrorWraps(t *testing.T, err, want error) {
	t.Helper()

	var se *SafeError
	if !errors.As(err, &se) {
		t.Fatalf("error type=%T, want *SafeError in the chain", err)
	}
	if !errors.Is(err, want) {
		t.Fatalf("errors.Is(err, %v)=false, err=%v", want, err)
	}
}
