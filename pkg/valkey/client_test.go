package valkey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), BrokerProfile.Options(mr.Addr(), ""))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Set(ctx, "tpareg:r1", "x", 0).Err(); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := mr.Exists("tpareg:r1"); !got {
		t.Error("key should exist in miniredis")
	}
}

func TestConnectWithPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	if _, err := Connect(context.Background(), TUIProfile.Options(mr.Addr(), "wrong")); err == nil {
		t.Error("Connect() with wrong password should fail")
	}

	client, err := Connect(context.Background(), TUIProfile.Options(mr.Addr(), "secret"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	client.Close()
}

func TestConnectUnreachable(t *testing.T) {
	p := BrokerProfile.WithTimeouts(100*time.Millisecond, 100*time.Millisecond)

	_, err := Connect(context.Background(), p.Options("127.0.0.1:59999", ""))
	if err == nil {
		t.Fatal("Connect() expected error for unreachable address")
	}
	if !errors.Is(err, apperr.ErrValkeyConnection) {
		t.Errorf("error should wrap ErrValkeyConnection: %v", err)
	}
}

func TestConnectNilOptions(t *testing.T) {
	if _, err := Connect(context.Background(), nil); !errors.Is(err, ErrNilOptions) {
		t.Errorf("Connect(nil) error = %v, want ErrNilOptions", err)
	}
}

func TestPingAfterServerClose(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), BrokerProfile.Options(mr.Addr(), ""))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	mr.Close()
	if err := Ping(context.Background(), client); !errors.Is(err, apperr.ErrValkeyConnection) {
		t.Errorf("Ping() error = %v, want ErrValkeyConnection", err)
	}
}

func TestProfileWithTimeouts(t *testing.T) {
	tests := []struct {
		name        string
		dial, cmd   time.Duration
		wantDial    time.Duration
		wantCommand time.Duration
	}{
		{"both", time.Second, 500 * time.Millisecond, time.Second, 500 * time.Millisecond},
		{"zero keeps profile", 0, 0, BrokerProfile.DialTimeout, BrokerProfile.CommandTimeout},
		{"dial only", 7 * time.Second, 0, 7 * time.Second, BrokerProfile.CommandTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BrokerProfile.WithTimeouts(tt.dial, tt.cmd)
			if p.DialTimeout != tt.wantDial || p.CommandTimeout != tt.wantCommand {
				t.Errorf("got dial=%v cmd=%v, want dial=%v cmd=%v", p.DialTimeout, p.CommandTimeout, tt.wantDial, tt.wantCommand)
			}
			if p.PoolSize != BrokerProfile.PoolSize {
				t.Errorf("PoolSize changed: %d", p.PoolSize)
			}
		})
	}
	if BrokerProfile.DialTimeout != 3*time.Second {
		t.Error("WithTimeouts must not modify the shared profile")
	}
}

func TestRedisOptions(t *testing.T) {
	o := TUIProfile.Options("valkey:6379", "pw").redisOptions()
	if o.Addr != "valkey:6379" || o.Password != "pw" {
		t.Errorf("unexpected addr/password: %s/%s", o.Addr, o.Password)
	}
	if o.ReadTimeout != TUIProfile.CommandTimeout || o.WriteTimeout != TUIProfile.CommandTimeout {
		t.Error("command timeout should apply to read and write")
	}
	if o.PoolSize != 5 || o.MinIdleConns != 1 {
		t.Errorf("pool = %d/%d, want 5/1", o.PoolSize, o.MinIdleConns)
	}
}

func TestIsKeyNotFound(t *testing.T) {
	if !IsKeyNotFound(redis.Nil) {
		t.Error("IsKeyNotFound(redis.Nil) = false")
	}
	if !IsKeyNotFound(errors.Join(errors.New("get"), redis.Nil)) {
		t.Error("wrapped redis.Nil should be detected")
	}
	if IsKeyNotFound(errors.New("other")) || IsKeyNotFound(nil) {
		t.Error("IsKeyNotFound should be false for other errors")
	}
}
