package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("CORE_TOKEN", "token")
	t.Setenv("CLOUD_URL", "https://cloud.example.com/")
	t.Setenv("CONNECTION_DEBOUNCE", "750ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConnectionDebounce != 750*time.Millisecond {
		t.Errorf("ConnectionDebounce = %v, want 750ms", cfg.ConnectionDebounce)
	}
	if cfg.GlassesModel != "virtual" {
		t.Errorf("GlassesModel = %q, want virtual", cfg.GlassesModel)
	}
	if got := cfg.WebsocketURL(); got != "wss://cloud.example.com/glasses-ws" {
		t.Errorf("WebsocketURL() = %q", got)
	}
	if got := cfg.PhotoUploadURL(); got != "https://cloud.example.com/api/photos/upload" {
		t.Errorf("PhotoUploadURL() = %q", got)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("CORE_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing CORE_TOKEN")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty token", func(c *Config) { c.CoreToken = "" }, "CORE_TOKEN"},
		{"blank token", func(c *Config) { c.CoreToken = "   " }, "CORE_TOKEN"},
		{"bad url", func(c *Config) { c.CloudURL = "not a url" }, "CLOUD_URL"},
		{"ws scheme", func(c *Config) { c.CloudURL = "ws://localhost:8002" }, "http or https"},
		{"bad level", func(c *Config) { c.LogLevel = "TRACE" }, "LOG_LEVEL"},
		{"zero queue", func(c *Config) { c.UplinkQueueSize = 0 }, "UPLINK_QUEUE_SIZE"},
		{"zero debounce", func(c *Config) { c.ConnectionDebounce = 0 }, "debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				CloudURL:           "http://localhost:8002",
				CoreToken:          "token",
				LogLevel:           "INFO",
				UplinkQueueSize:    10,
				ConnectionDebounce: 500 * time.Millisecond,
				ScoAttemptTimeout:  time.Second,
			}
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWebsocketURL_HTTP(t *testing.T) {
	cfg := &Config{CloudURL: "http://localhost:8002"}
	if got := cfg.WebsocketURL(); got != "ws://localhost:8002/glasses-ws" {
		t.Errorf("WebsocketURL() = %q", got)
	}
}
