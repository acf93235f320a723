package internal

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// loggers caches one *slog.Logger per subsystem
var loggers sync.Map

// Logger returns the logger of a subsystem. The level comes from
// FRP_LOG_LEVEL (debug, info, warn, error) and defaults to info.
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	l := slog.New(handler).With("subsystem", subsystem)

	actual, _ := loggers.LoadOrStore(subsystem, l)
	return actual.(*slog.Logger)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("FRP_LOG_LEVEL")) {
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
