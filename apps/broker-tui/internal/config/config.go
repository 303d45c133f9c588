// Package config はBroker TUIの設定管理を提供する。
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はBroker TUIの設定を表す。
type Config struct {
	RedisHost string `envconfig:"REDIS_HOST" default:"127.0.0.1"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPass string `envconfig:"REDIS_PASS"`

	// クラウドブローカーの内部API
	BrokerURL        string        `envconfig:"BROKER_URL" default:"http://localhost:8002"`
	InternalAPIToken string        `envconfig:"INTERNAL_API_TOKEN"`
	BrokerTimeout    time.Duration `envconfig:"BROKER_TIMEOUT" default:"5s"`

	// ブローカー側のHEARTBEAT_WINDOWと揃える
	HeartbeatWindow time.Duration `envconfig:"HEARTBEAT_WINDOW" default:"90s"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"5s"`

	// 監査ログ。未設定の場合は出力しない
	Operator      string `envconfig:"OPERATOR" default:"operator"`
	AuditLog      string `envconfig:"AUDIT_LOG"`
	LogMaskUserID bool   `envconfig:"LOG_MASK_USER_ID" default:"true"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BrokerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BROKER_URL must be an http(s) URL: %q", c.BrokerURL)
	}
	if c.HeartbeatWindow <= 0 {
		return fmt.Errorf("HEARTBEAT_WINDOW must be positive: %s", c.HeartbeatWindow)
	}
	if c.RefreshInterval < MinRefreshInterval {
		return fmt.Errorf("REFRESH_INTERVAL must be at least %s: %s", MinRefreshInterval, c.RefreshInterval)
	}
	if c.BrokerTimeout <= 0 {
		return fmt.Errorf("BROKER_TIMEOUT must be positive: %s", c.BrokerTimeout)
	}
	return nil
}

// ValkeyAddr はValkeyの接続先アドレスを返す。
func (c *Config) ValkeyAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// BrokerBaseURL は末尾のスラッシュを除いたブローカーURLを返す。
func (c *Config) BrokerBaseURL() string {
	return strings.TrimRight(c.BrokerURL, "/")
}
