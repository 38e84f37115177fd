//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slot-booking-manager/internal/handler/httperr"
	"slot-booking-manager/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	engine := newEngine(RequestLogger(discardLogger()))
	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = RequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestLoggerKeepsIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "debug", TimeZone: "UTC", TimeFormat: time.RFC3339}, true)
	engine := newEngine(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var completed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &completed))
	assert.Equal(t, "Request completed", completed["msg"])
	assert.Equal(t, "WARN", completed["level"])
	assert.Equal(t, "abc-123", completed["request_id"])
}

func TestErrorHandlerRendersPublicError(t *testing.T) {
	engine := newEngine(ErrorHandler(discardLogger()))
	engine.GET("/fail", func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusConflict}
		resp.Error.Message = httperr.MsgSlotAlreadyBooked
		_ = c.Error(&gin.Error{Err: errors.New("booked"), Type: gin.ErrorTypePublic, Meta: resp})
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), httperr.MsgSlotAlreadyBooked)
}

func TestErrorHandlerHidesPrivateError(t *testing.T) {
	engine := newEngine(ErrorHandler(discardLogger()))
	engine.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("connection reset"))
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), httperr.MsgInternal)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestRecovery(t *testing.T) {
	engine := newEngine(Recovery(discardLogger()))
	engine.GET("/panic", func(_ *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), httperr.MsgInternal)
}

func TestCORSAllowsAdminHeader(t *testing.T) {
	cfg := config.NewTestConfig().CORS
	cfg.AllowHeaders = []string{"Content-Type"}
	engine := newEngine(NewCORSMiddleware(cfg, discardLogger()))
	engine.POST("/add", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/add", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", AdminPasswordHeader)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), AdminPasswordHeader)
}

func TestCORSWildcardOrigin(t *testing.T) {
	cfg := config.NewTestConfig().CORS
	cfg.AllowOrigins = []string{"*"}
	engine := newEngine(NewCORSMiddleware(cfg, discardLogger()))
	engine.GET("/timeslots", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/timeslots", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
