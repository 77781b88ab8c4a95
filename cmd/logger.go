package cmd

import (
	"io"
	"log/slog"
)

// newLogger creates a text logger writing to w at the level named by
// verbosity. "quiet" only reports errors.
func newLogger(verbosity string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch verbosity {
	case "quiet":
		level = slog.LevelError
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
