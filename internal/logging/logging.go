package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// New builds a logger writing to w at the named level. Timestamps are
// RFC3339. Unknown levels fall back to info and the returned flag is false.
func New(w io.Writer, format Format, level string) (*slog.Logger, bool) {
	lvl, ok := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}

			return a
		},
	}

	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h), ok
}

// Setup installs the logger as the process default.
func Setup(w io.Writer, format Format, level string) {
	logger, ok := New(w, format, level)
	slog.SetDefault(logger)

	if !ok {
		slog.Warn("unknown log level, using info", "level", level)
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}

	return slog.LevelInfo, false
}
