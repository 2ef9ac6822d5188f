package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/megamarket-backend/internal/config"
	"github.com/heartmarshall/megamarket-backend/pkg/ctxutil"
)

const appName = "megamarket"

// NewLogger builds the process logger on stderr and installs it as the
// slog default.
//
// Format "json" is for production; "text" adds source locations. Level is
// one of debug, info, warn, error (case-insensitive) and defaults to info.
// Record times are written in UTC to line up with catalog timestamps, and
// records logged with a request context carry its request id.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   strings.EqualFold(cfg.Format, "text"),
		ReplaceAttr: utcTime,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(ctxutil.NewLogHandler(handler)).With(slog.String("app", appName))
}

func utcTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.TimeValue(a.Value.Time().UTC())
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
