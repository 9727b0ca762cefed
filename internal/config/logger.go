package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger shared by the API, the migrator and
// the proctoring agent. Production emits JSON at info level for ingestion;
// anything else gets readable text at debug level with source locations,
// which matters when chasing detection-loop timing.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: env == "development",
	}

	if env == "production" {
		opts.Level = slog.LevelInfo
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}

	opts.Level = slog.LevelDebug
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
