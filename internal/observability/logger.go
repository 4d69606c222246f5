package observability

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "microloan-backend"

// NewLogger writes JSON at info level in production and text at debug level elsewhere.
func NewLogger(env string) *slog.Logger { return newLogger(env, os.Stdout) }

func newLogger(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	if env == "prod" || env == "production" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h).With("service", serviceName)
}
