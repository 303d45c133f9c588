package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubConn はテスト用のConnection実装。
type stubConn struct {
	mu     sync.Mutex
	sent   []any
	closed bool
}

func (c *stubConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *stubConn) SendBinary([]byte) error { return nil }

func (c *stubConn) Close(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *stubConn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func newRegistry() *session.Registry {
	return session.NewRegistry(session.Options{
		AudioRetention:      10 * time.Second,
		TranscriptRetention: time.Minute,
		GracePeriod:         time.Minute,
	}, nil, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) httputil.ProblemDetail {
	t.Helper()
	var p httputil.ProblemDetail
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, body = %s", err, w.Body.String())
	}
	return p
}
