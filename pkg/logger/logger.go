// Package logger sets up the process-wide slog logger for the topup backend.
// The server, migrate and seed commands all call Init once with APP_ENV and
// pass the resulting logger down to their services.
package logger

import (
	"log/slog"
	"os"
)

const envProduction = "production"

var defaultLogger *slog.Logger

// Init configures the process-wide logger. Production deployments log JSON
// at info so the lines stay machine-parseable; everything else gets text at
// debug for local reading.
func Init(env string) {
	var handler slog.Handler

	if env == envProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the configured logger. Handler constructors run
// before Init in some test setups, so a development logger is created on
// first use rather than returning nil.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
