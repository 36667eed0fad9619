package herokupg

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/tracelog"
)

// WithQueryTracing routes pgx query and connect trace events through logger.
//
// SQL text and argument values are redacted before they reach the logger:
// statements embed identifiers and literals that do not belong in logs, and
// arguments can carry anything the application stores. Everything else
// (durations, row counts, pids) passes through.
func WithQueryTracing(logger *slog.Logger) Option {
	return func(o *connectOptions) {
		o.traceLogger = logger
	}
}

func newRedactingTracer(logger *slog.Logger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
			attrs := make([]slog.Attr, 0, len(data))
			for k, v := range data {
				switch k {
				case "sql", "args":
					attrs = append(attrs, slog.String(k, "[REDACTED]"))
				default:
					attrs = append(attrs, slog.Any(k, v))
				}
			}
			logger.LogAttrs(ctx, traceLevel(level), msg, attrs...)
		}),
		LogLevel: tracelog.LogLevelDebug,
	}
}

func traceLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	case tracelog.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
