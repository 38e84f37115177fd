//go:build unit || e2e

package httptest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const AdminPasswordHeader = "x-admin-password"

// PerformRequest executes an HTTP request, sending adminPassword in the admin
// header when it is not empty.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, adminPassword string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if adminPassword != "" {
		req.Header.Set(AdminPasswordHeader, adminPassword)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// EventStream is an open server-sent events connection.
type EventStream struct {
	resp   *http.Response
	reader *bufio.Reader
	cancel context.CancelFunc
}

// OpenEventStream connects to baseURL+path on a running server. The response
// recorder cannot be used here because gin streams need a real connection.
func OpenEventStream(t *testing.T, baseURL, path string) *EventStream {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		require.NoError(t, err)
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stream := &EventStream{resp: resp, reader: bufio.NewReader(resp.Body), cancel: cancel}
	t.Cleanup(stream.Close)
	return stream
}

func (s *EventStream) Header() http.Header {
	return s.resp.Header
}

// NextData returns the data of the next event with the given name, skipping
// comments and other events. It fails the test after timeout.
func (s *EventStream) NextData(t *testing.T, event string, timeout time.Duration) string {
	t.Helper()

	type result struct {
		data string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var name, data string
		for {
			line, err := s.reader.ReadString('\n')
			if err != nil {
				done <- result{err: err}
				return
			}
			line = strings.TrimRight(line, "\r\n")
			switch {
			case line == "":
				if name == event && data != "" {
					done <- result{data: data}
					return
				}
				name, data = "", ""
			case strings.HasPrefix(line, ":"):
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
	}()

	select {
	case r := <-done:
		require.NoError(t, r.err, "event stream ended")
		return r.data
	case <-time.After(timeout):
		s.Close()
		t.Fatalf("no %q event within %s", event, timeout)
		return ""
	}
}

func (s *EventStream) Close() {
	s.cancel()
	_ = s.resp.Body.Close()
}
