package herokupg

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
)

type captureHandler struct {
	mu      sync.Mutex
	records []capturedRecord
}

type capturedRecord struct {
	level slog.Level
	msg   string
	attrs map[string]string
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]string)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, capturedRecord{level: r.Level, msg: r.Message, attrs: attrs})
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *captureHandler) all() []capturedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]capturedRecord(nil), h.records...)
}

func TestQueryTracing_RedactsSQLAndArgs(t *testing.T) {
	t.Parallel()

	h := &captureHandler{}
	tracer := newRedactingTracer(slog.New(h))

	tracer.Logger.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":      "SELECT secret FROM credentials WHERE user = 'alice'",
		"args":     []any{"supersecret"},
		"time":     1250 * time.Microsecond,
		"rowCount": 1,
	})

	records := h.all()
	if len(records) != 1 {
		t.Fatalf("records=%d, want 1", len(records))
	}
	rec := records[0]
	if rec.msg != "Query" {
		t.Fatalf("msg=%q, want %q", rec.msg, "Query")
	}
	if rec.level != slog.LevelInfo {
		t.Fatalf("level=%v, want %v", rec.level, slog.LevelInfo)
	}
	if rec.attrs["sql"] != "[REDACTED]" {
		t.Fatalf("sql attr=%q, want %q", rec.attrs["sql"], "[REDACTED]")
	}
	if rec.attrs["args"] != "[REDACTED]" {
		t.Fatalf("args attr=%q, want %q", rec.attrs["args"], "[REDACTED]")
	}
	if rec.attrs["rowCount"] != "1" {
		t.Fatalf("rowCount attr=%q, want %q", rec.attrs["rowCount"], "1")
	}
	if _, ok := rec.attrs["time"]; !ok {
		t.Fatal("expected the time attr to pass through")
	}
	for k, v := range rec.attrs {
		if strings.Contains(v, "supersecret") || strings.Contains(v, "SELECT secret") {
			t.Fatalf("attr %q leaked sensitive content: %q", k, v)
		}
	}
}

func TestTraceLevel_MapsTracelogLevelsOntoSlog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   tracelog.LogLevel
		want slog.Level
	}{
		{in: tracelog.LogLevelTrace, want: slog.LevelDebug},
		{in: tracelog.LogLevelDebug, want: slog.LevelDebug},
		{in: tracelog.LogLevelInfo, want: slog.LevelInfo},
		{in: tracelog.LogLevelWarn, want: slog.LevelWarn},
		{in: tracelog.LogLevelError, want: slog.LevelError},
		{in: tracelog.LogLevel(99), want: slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := traceLevel(tt.in); got != tt.want {
			t.Fatalf("traceLevel(%v)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWithQueryTracing_InstallsTracer(t *testing.T) {
	t.Parallel()

	o := applyOptions([]Option{WithQueryTracing(slog.New(&captureHandler{}))})
	pgxCfg, _, err := buildConnConfig(Config{
		ConnectionString: "postgres://alice:pw@ec2-1-2-3-4.compute-1.amazonaws.com:5432/d1a2b3",
	}, o)
	if err != nil {
		t.Fatalf("buildConnConfig() error = %v", err)
	}
	if pgxCfg.Tracer == nil {
		t.Fatal("expected a tracer on the pgx config")
	}

	plain, _, err := buildConnConfig(Config{
		ConnectionString: "postgres://alice:pw@ec2-1-2-3-4.compute-1.amazonaws.com:5432/d1a2b3",
	}, applyOptions(nil))
	if err != nil {
		t.Fatalf("buildConnConfig() error = %v", err)
	}
	if plain.Tracer != nil {
		t.Fatal("expected no tracer without the option")
	}
}
