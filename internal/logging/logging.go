package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a slog.Logger writing to stderr at the provided level
// string (debug, info, warn, error). format may be "json" or "text".
func New(level string, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// FromFlags maps the traditional --verbose / --quiet pair to a logger:
// verbose enables debug output, quiet suppresses warnings.
func FromFlags(verbose, quiet bool, format string) *slog.Logger {
	level := "info"
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "error"
	}
	return New(level, format)
}

func parseLevel(level string) slog.Level {
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
