// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はグラスクライアントの設定を保持する。
type Config struct {
	// クラウド接続設定
	CloudURL  string `envconfig:"CLOUD_URL" default:"http://localhost:8002"`
	CoreToken string `envconfig:"CORE_TOKEN" required:"true"`

	// デバイス設定
	GlassesModel string `envconfig:"GLASSES_MODEL" default:"virtual"`
	AudioSource  string `envconfig:"AUDIO_SOURCE"`
	BluetoothMic bool   `envconfig:"BLUETOOTH_MIC" default:"false"`

	// ログ設定
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// 接続状態設定
	ConnectionDebounce time.Duration `envconfig:"CONNECTION_DEBOUNCE" default:"500ms"`
	ScoAttemptTimeout  time.Duration `envconfig:"SCO_ATTEMPT_TIMEOUT" default:"3s"`

	// アップリンク設定
	UplinkQueueSize      int           `envconfig:"UPLINK_QUEUE_SIZE" default:"200"`
	ReconnectMaxInterval time.Duration `envconfig:"RECONNECT_MAX_INTERVAL" default:"30s"`
	UploadTimeout        time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"10s"`
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

// validate は設定値の整合性を検証する。
func (c *Config) validate() error {
	if strings.TrimSpace(c.CoreToken) == "" {
		return fmt.Errorf("CORE_TOKEN must not be empty")
	}
	u, err := url.ParseRequestURI(c.CloudURL)
	if err != nil {
		return fmt.Errorf("invalid CLOUD_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CLOUD_URL must be http or https: %s", c.CloudURL)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s", c.LogLevel)
	}
	if c.UplinkQueueSize <= 0 {
		return fmt.Errorf("UPLINK_QUEUE_SIZE must be positive: %d", c.UplinkQueueSize)
	}
	if c.ConnectionDebounce <= 0 || c.ScoAttemptTimeout <= 0 {
		return fmt.Errorf("debounce and SCO attempt timeout must be positive")
	}
	return nil
}

// HTTPBaseURL は末尾スラッシュを除いたクラウドのHTTP URLを返す。
func (c *Config) HTTPBaseURL() string {
	return strings.TrimRight(c.CloudURL, "/")
}

// WebsocketURL はデバイス用WebSocketエンドポイントのURLを返す。
func (c *Config) WebsocketURL() string {
	base := c.HTTPBaseURL()
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + GlassesWSPath
}

// PhotoUploadURL は写真アップロードエンドポイントのURLを返す。
func (c *Config) PhotoUploadURL() string {
	return c.HTTPBaseURL() + PhotoUploadPath
}
