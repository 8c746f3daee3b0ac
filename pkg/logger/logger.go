package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide logger. Setup must run before anything logs.
var Log *slog.Logger

func init() {
	// A usable default so tests and early init code never hit a nil logger.
	Log = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Setup configures the global logger for the given environment: JSON output
// in production, human-readable text everywhere else, debug level only in
// development.
func Setup(env string) {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch env {
	case "production":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func Debug(msg string, args ...any) { Log.Debug(msg, args...) }

func Info(msg string, args ...any) { Log.Info(msg, args...) }

func Warn(msg string, args ...any) { Log.Warn(msg, args...) }

func Error(msg string, args ...any) { Log.Error(msg, args...) }

// With returns a child logger carrying the given attributes on every record.
func With(args ...any) *slog.Logger {
	return Log.With(args...)
}
