// Package infrastructure provides shared runtime plumbing: the structured
// logger used by every command and the request-scoped context helpers.
package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"macrocli/internal/config"
)

type contextKey string

// requestIDContextKey stores the request ID for request-scoped logging.
const requestIDContextKey contextKey = "request_id"

// InitializeLogger creates the process-wide slog logger and installs it as
// the default. Format "json" is the production default; anything else gets
// the text handler.
func InitializeLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFrom returns the request ID from the context, empty when unset.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}
