package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

// seedRegistration はブローカーと同じ形式で登録を書き込む。
func seedRegistration(t *testing.T, client *redis.Client, id, pkg string, registeredAt, lastHB time.Time, stale bool) {
	t.Helper()
	ctx := context.Background()
	fields := map[string]any{
		"registration_id":   id,
		"package_name":      pkg,
		"api_key_hash":      "hash",
		"temporary_key":     false,
		"webhook_url":       "https://" + pkg + "/webhook",
		"server_urls":       "https://a.example.com,https://b.example.com",
		"registered_at":     registeredAt.UnixMilli(),
		"last_heartbeat_at": lastHB.UnixMilli(),
		"stale":             stale,
	}
	if err := client.HSet(ctx, RegistrationKey(id), fields).Err(); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	client.SAdd(ctx, KeyRegistrationAll, id)
	client.SAdd(ctx, RegistrationPackageKey(pkg), id)
}

func TestNew(t *testing.T) {
	_, client := newTestRedis(t)

	s := New(client)
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if s.Registrations() == nil || s.Apps() == nil {
		t.Error("expected sub stores to be non-nil")
	}
}

func TestStore_PingAfterServerClose(t *testing.T) {
	mr, client := newTestRedis(t)
	s := New(client)
	defer s.Close()

	mr.Close()

	if err := s.Ping(context.Background()); err == nil {
		t.Error("expected Ping() to fail after server close")
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{RegistrationKey("r1"), "tpareg:r1"},
		{RegistrationPackageKey("com.example.app"), "idx:tpareg:pkg:com.example.app"},
		{AppKey("com.example.app"), "app:com.example.app"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
