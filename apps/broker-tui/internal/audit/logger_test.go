package audit

import (
	"bytes"
	"encoding/json"
	"testing"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	return entry
}

func TestLogger_LogView(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "broker-tui", "alice", true)

	logger.LogView(TargetRegistration, "tpareg:reg-1")

	entry := decode(t, &buf)
	want := map[string]string{
		"level":       "INFO",
		"app":         "broker-tui",
		"operator":    "alice",
		"event_id":    "AUDIT_LOG",
		"operation":   "view",
		"target_type": "registration",
		"target_key":  "tpareg:reg-1",
		"msg":         "registration viewed",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %s", k, entry[k], v)
		}
	}
}

func TestLogger_LogSessionSearch(t *testing.T) {
	tests := []struct {
		name string
		mask bool
		want string
	}{
		{"masked", true, "us**@example.com"},
		{"unmasked", false, "user@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "broker-tui", "ops", tt.mask)

			logger.LogSessionSearch("user@example.com", 2)

			entry := decode(t, &buf)
			if entry["user_id"] != tt.want {
				t.Errorf("user_id = %v, want %s", entry["user_id"], tt.want)
			}
			if entry["operation"] != "search" || entry["result_count"] != float64(2) {
				t.Errorf("entry = %v", entry)
			}
		})
	}
}
