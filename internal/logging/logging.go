// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values fall
// back to info and report ok=false.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a JSON logger writing to w with RFC3339 timestamps.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Init installs a stdout logger at the configured level as the slog default
// and returns it.
func Init(levelStr string) *slog.Logger {
	level, ok := ParseLevel(levelStr)
	logger := New(os.Stdout, level)
	slog.SetDefault(logger)
	if !ok {
		logger.Warn("invalid LOG_LEVEL, defaulting to info", "configured", levelStr)
	}
	logger.Info("logger initialized", "level", level.String())
	return logger
}
