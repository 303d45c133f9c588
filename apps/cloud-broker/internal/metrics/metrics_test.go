package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ConnectionOpened(SourceDevice)
	m.ConnectionOpened(SourceDevice)
	m.ConnectionClosed(SourceDevice)
	m.MessageReceived(SourceDevice, "button_press")
	m.EventRouted("button_press", 2)
	m.EventRouted("button_press", 0)
	m.FallbackFired("button_press")
	m.AudioReceived(160)
	m.AppStart(true)
	m.AppStart(false)
	m.CaptureOutcome("resolved")
	m.SetStaleTPAs(3)

	if got := testutil.ToFloat64(m.connections.WithLabelValues(SourceDevice)); got != 1 {
		t.Errorf("connections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.routed.WithLabelValues("button_press")); got != 2 {
		t.Errorf("routed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.audioBytes); got != 160 {
		t.Errorf("audioBytes = %v, want 160", got)
	}
	if got := testutil.ToFloat64(m.appStarts.WithLabelValues("error")); got != 1 {
		t.Errorf("appStarts{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.staleTPAs); got != 3 {
		t.Errorf("staleTPAs = %v, want 3", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ConnectionOpened(SourceTPA)
	m.MessageReceived(SourceTPA, "subscription_update")
	m.ProtocolError(SourceTPA)
	m.FallbackFired("button_press")
	m.CaptureOutcome("expired")
	m.SetStaleTPAs(1)
}

func TestHandler(t *testing.T) {
	m := New()
	m.FallbackFired("button_press")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `glasses_broker_event_fallbacks_total{stream="button_press"} 1`) {
		t.Errorf("metrics output missing fallback counter:\n%s", body)
	}
}
