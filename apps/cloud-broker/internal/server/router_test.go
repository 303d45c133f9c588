package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/handler"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/metrics"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/transport"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	testingclock "k8s.io/utils/clock/testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	registry := session.NewRegistry(session.Options{
		AudioRetention:      10 * time.Second,
		TranscriptRetention: time.Minute,
		GracePeriod:         time.Minute,
	}, testingclock.NewFakePassiveClock(time.UnixMilli(1700000000000)), logging.NewCommonFields(nil))
	m := metrics.New()

	cfg := &config.Config{
		ListenAddr:       ":0",
		GinMode:          gin.TestMode,
		InternalAPIToken: "internal-secret",
	}
	return New(cfg, &Handlers{
		WS:        handler.NewWSHandler(context.Background(), registry, nil, nil, nil, m, transport.Options{}, time.Second),
		TpaServer: handler.NewTpaServerHandler(nil),
		Photo:     handler.NewPhotoHandler(nil, nil, "http://localhost", 1024, m),
		Internal:  handler.NewInternalHandler(registry, nil, nil),
		Audio:     handler.NewAudioHandler(registry, nil),
		Health:    handler.NewHealthHandler(registry),
		Metrics:   m.Handler(),
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	srv := newTestServer(t)

	want := map[string]bool{
		"GET /health":                                       false,
		"GET /metrics":                                      false,
		"GET /glasses-ws":                                   false,
		"GET /tpa-ws":                                       false,
		"POST /api/tpa-server/register":                     false,
		"POST /api/tpa-server/heartbeat":                    false,
		"POST /api/tpa-server/restart":                      false,
		"POST /api/photos/upload":                           false,
		"GET /api/photos/:requestId":                        false,
		"GET /api/sessions/:sessionId/audio":                false,
		"POST /api/internal/app-state/:userId":              false,
		"GET /api/internal/sessions/:userId":                false,
		"POST /api/internal/uninstall/:userId/:packageName": false,
		"POST /api/internal/settings/:userId/:packageName":  false,
		"GET /api/internal/gallery/:userId":                 false,
	}
	for _, r := range srv.engine.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, found := range want {
		if !found {
			t.Errorf("route %s not registered", route)
		}
	}
}

func TestServer_HealthAndInternalAuth(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/internal/sessions/u1", nil)
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("internal without token status = %d, want 401", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/internal/sessions/u1", nil)
	req.Header.Set(internalTokenHeader, "internal-secret")
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("internal with token status = %d, want 200", w.Code)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", w.Code)
	}
}
