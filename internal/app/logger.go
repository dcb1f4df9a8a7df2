package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lularocha/glossary-builder/internal/config"
)

// NewLogger builds the process logger on stderr and installs it as the slog
// default. Stdout stays free for command output such as `glossary expand`.
// Every record carries the build version.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, cfg)).With(slog.String("version", Version))
	slog.SetDefault(logger)
	return logger
}

// newHandler picks JSON (the default) or text output. Text output is meant
// for local runs and includes the source location.
func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	text := strings.EqualFold(strings.TrimSpace(cfg.Format), "text")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}
	if text {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
