// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvKeyLevel  = "LOG_LEVEL"
	EnvKeyFormat = "LOG_FORMAT"
)

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values give info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds a logger writing to w. format "json" selects the JSON handler.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs a stderr logger configured from LOG_LEVEL and LOG_FORMAT as the default.
func Setup() *slog.Logger {
	l := New(os.Stderr, os.Getenv(EnvKeyLevel), os.Getenv(EnvKeyFormat))
	slog.SetDefault(l)
	return l
}
