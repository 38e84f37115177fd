package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger logs one line when a request starts and one when it ends.
// Event streams are logged as opened/closed since they stay up for minutes.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = newRequestID(start)
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		stream := strings.Contains(c.GetHeader("Accept"), "text/event-stream")
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}

		if stream {
			logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "Stream opened", attrs...)
		} else {
			logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "Request started", attrs...)
		}

		c.Next()

		status := c.Writer.Status()
		attrs = append(attrs,
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		if IsAdmin(c) {
			attrs = append(attrs, slog.Bool("admin", true))
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		msg := "Request completed"
		if stream {
			msg = "Stream closed"
		}
		logger.LogAttrs(c.Request.Context(), levelForStatus(status), msg, attrs...)
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func newRequestID(now time.Time) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d", now.UTC().Format("20060102150405"), now.UnixNano()%1e8)
	}
	return now.UTC().Format("20060102150405") + "-" + hex.EncodeToString(b)
}
