// Package store はValkeyへのデータアクセスを提供する。
package store

import (
	"context"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ValkeyClient はValkeyクライアントをラップする。
type ValkeyClient struct {
	client *redis.Client
}

// NewValkeyClient は新しいValkeyClientを生成する。接続確認に失敗した場合はエラーを返す。
func NewValkeyClient(cfg *config.Config) (*ValkeyClient, error) {
	opts := valkey.BrokerProfile.
		WithTimeouts(config.ValkeyConnectTimeout, config.ValkeyCommandTimeout).
		Options(cfg.RedisAddr(), cfg.RedisPass)

	client, err := valkey.Connect(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	return &ValkeyClient{client: client}, nil
}

// Close は接続を閉じる。
func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// Client は内部のredis.Clientを返す。
func (v *ValkeyClient) Client() *redis.Client {
	return v.client
}
