package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/healthtrack-backend/internal/config"
)

// redactedKeys name attributes that may carry credentials. Their values are
// replaced before a record is written, wherever they appear in a group.
var redactedKeys = map[string]bool{
	"password":      true,
	"token":         true,
	"refresh_token": true,
	"authorization": true,
	"jwt_secret":    true,
}

const redacted = "[REDACTED]"

// NewLogger builds the process logger on stderr and installs it as the slog
// default. Every record carries the service name and build version.
//
// Format "json" is for production; any other format produces text with
// source locations. Level is debug, info, warn (or warning) or error,
// case-insensitive, and defaults to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	json := strings.EqualFold(strings.TrimSpace(cfg.Format), "json")
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   !json,
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", ServiceName),
		slog.String("version", Version),
	)
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, redacted)
	}
	return a
}

func parseLevel(s string) slog.Level {
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
