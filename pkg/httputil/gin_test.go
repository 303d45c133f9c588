package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(path, traceID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	if traceID != "" {
		c.Set(TraceIDKey, traceID)
	}
	return c, w
}

func TestWriteError(t *testing.T) {
	c, w := newTestContext("/api/photos/req-42", "trace-1")

	WriteError(c, NotFound("capture request not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != ContentType {
		t.Errorf("Content-Type = %q, want %q", ct, ContentType)
	}
	p, ok := ParseProblem(w.Body.Bytes())
	if !ok {
		t.Fatalf("body is not a problem: %s", w.Body.String())
	}
	if p.Instance != "/api/photos/req-42" {
		t.Errorf("Instance = %q", p.Instance)
	}
	if p.TraceID != "trace-1" {
		t.Errorf("TraceID = %q", p.TraceID)
	}
	if c.IsAborted() {
		t.Error("WriteError should not abort")
	}
}

func TestWriteErrorKeepsExplicitInstance(t *testing.T) {
	c, w := newTestContext("/api/internal/sessions/u1", "")
	problem := BadRequest("bad")
	problem.Instance = "/custom"

	WriteError(c, problem)

	p, _ := ParseProblem(w.Body.Bytes())
	if p.Instance != "/custom" {
		t.Errorf("Instance = %q, want /custom", p.Instance)
	}
	if p.TraceID != "" {
		t.Errorf("TraceID = %q, want empty", p.TraceID)
	}
	if problem.TraceID != "" || problem.Instance != "/custom" {
		t.Error("the original problem must not be modified")
	}
}

func TestAbortWithError(t *testing.T) {
	c, w := newTestContext("/api/internal/app-state/u1", "trace-2")

	AbortWithError(c, Unauthorized("invalid internal API token"))

	if !c.IsAborted() {
		t.Error("AbortWithError should abort the context")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	p, ok := ParseProblem(w.Body.Bytes())
	if !ok || p.TraceID != "trace-2" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
