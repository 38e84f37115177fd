package middleware

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"slot-booking-manager/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// NewLogger builds the process logger and installs it as the slog default.
// Release mode logs JSON; every other gin mode logs text.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stdout, cfg, gin.Mode() == gin.ReleaseMode)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig, asJSON bool) *slog.Logger {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
