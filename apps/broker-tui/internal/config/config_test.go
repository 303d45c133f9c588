package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.ValkeyAddr() != "127.0.0.1:6379" {
			t.Errorf("expected ValkeyAddr to be '127.0.0.1:6379', got '%s'", cfg.ValkeyAddr())
		}
		if cfg.HeartbeatWindow != 90*time.Second {
			t.Errorf("expected HeartbeatWindow 90s, got %s", cfg.HeartbeatWindow)
		}
		if cfg.Operator != "operator" {
			t.Errorf("expected Operator 'operator', got '%s'", cfg.Operator)
		}
	})

	t.Run("reads Valkey settings from environment", func(t *testing.T) {
		t.Setenv("REDIS_HOST", "valkey.internal")
		t.Setenv("REDIS_PORT", "6380")
		t.Setenv("REDIS_PASS", "secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.ValkeyAddr() != "valkey.internal:6380" {
			t.Errorf("expected ValkeyAddr 'valkey.internal:6380', got '%s'", cfg.ValkeyAddr())
		}
		if cfg.RedisPass != "secret" {
			t.Errorf("expected RedisPass 'secret', got '%s'", cfg.RedisPass)
		}
	})

	t.Run("trims trailing slash from broker URL", func(t *testing.T) {
		t.Setenv("BROKER_URL", "https://broker.example.com/")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.BrokerBaseURL() != "https://broker.example.com" {
			t.Errorf("unexpected BrokerBaseURL: %s", cfg.BrokerBaseURL())
		}
	})

	t.Run("rejects invalid duration", func(t *testing.T) {
		t.Setenv("HEARTBEAT_WINDOW", "soon")

		if _, err := Load(); err == nil {
			t.Error("expected error for invalid HEARTBEAT_WINDOW")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"ws scheme", func(c *Config) { c.BrokerURL = "ws://localhost:8002" }, "BROKER_URL"},
		{"no host", func(c *Config) { c.BrokerURL = "http://" }, "BROKER_URL"},
		{"zero window", func(c *Config) { c.HeartbeatWindow = 0 }, "HEARTBEAT_WINDOW"},
		{"refresh too fast", func(c *Config) { c.RefreshInterval = 100 * time.Millisecond }, "REFRESH_INTERVAL"},
		{"zero timeout", func(c *Config) { c.BrokerTimeout = 0 }, "BROKER_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				BrokerURL:       "http://localhost:8002",
				BrokerTimeout:   5 * time.Second,
				HeartbeatWindow: 90 * time.Second,
				RefreshInterval: 5 * time.Second,
			}
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
