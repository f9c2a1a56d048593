package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger creates the docchat logger: human-readable text on stderr
// fanned out with JSON records appended to the configured log file. The
// returned cleanup closes the file.
//
// docchat is an interactive program, so stderr logging defaults to warnings
// and above regardless of the configured level; the file gets everything.
func SetupLogger(cfg Config) (*slog.Logger, func() error) {
	stderrLevel := cfg.LogLevel
	if stderrLevel < slog.LevelWarn {
		stderrLevel = slog.LevelWarn
	}
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: stderrLevel,
	})

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// No log file is not fatal; keep the stderr handler only.
		slog.Warn("log file unavailable, logging to stderr only", "error", err, "file", cfg.LogFile)
		return slog.New(stderrHandler), func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})

	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))

	return logger, file.Close
}

// NewTestLogger creates a logger writing to the given writer (for tests).
func NewTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
