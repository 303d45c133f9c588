// Package config は環境変数から設定を読み込む。
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はクラウドブローカーの設定を保持する。
type Config struct {
	// Valkey設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// サーバー設定
	ListenAddr    string `envconfig:"LISTEN_ADDR" default:":8002"`
	PublicURL     string `envconfig:"PUBLIC_URL" default:"http://localhost:8002"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskUserID bool   `envconfig:"LOG_MASK_USER_ID" default:"true"`
	GinMode       string `envconfig:"GIN_MODE" default:"release"`

	// 認証設定
	CoreTokenSecret  string `envconfig:"CORE_TOKEN_SECRET" required:"true"`
	InternalAPIToken string `envconfig:"INTERNAL_API_TOKEN"`

	// セッション設定
	SessionGracePeriod  time.Duration `envconfig:"SESSION_GRACE_PERIOD" default:"60s"`
	AudioBufferSeconds  int           `envconfig:"AUDIO_BUFFER_SECONDS" default:"10"`
	TranscriptRetention time.Duration `envconfig:"TRANSCRIPT_RETENTION" default:"30m"`

	// アプリ起動設定
	AppConnectTimeout time.Duration `envconfig:"APP_CONNECT_TIMEOUT" default:"10s"`
	WebhookTimeout    time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"5s"`

	// キャプチャ設定
	CaptureRequestTTL    time.Duration `envconfig:"CAPTURE_REQUEST_TTL" default:"30s"`
	CaptureSweepInterval time.Duration `envconfig:"CAPTURE_SWEEP_INTERVAL" default:"5s"`
	MaxUploadBytes       int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	// TPAサーバー設定
	HeartbeatWindow       time.Duration `envconfig:"HEARTBEAT_WINDOW" default:"90s"`
	LivenessCheckInterval time.Duration `envconfig:"LIVENESS_CHECK_INTERVAL" default:"15s"`
	AllowTemporaryAPIKey  bool          `envconfig:"ALLOW_TEMPORARY_API_KEY" default:"true"`
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
	if strings.TrimSpace(c.CoreTokenSecret) == "" {
		return fmt.Errorf("CORE_TOKEN_SECRET must not be empty")
	}
	if _, err := url.ParseRequestURI(c.PublicURL); err != nil {
		return fmt.Errorf("invalid PUBLIC_URL: %w", err)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %s", c.LogLevel)
	}
	if c.AudioBufferSeconds <= 0 {
		return fmt.Errorf("AUDIO_BUFFER_SECONDS must be positive: %d", c.AudioBufferSeconds)
	}
	if c.CaptureRequestTTL <= 0 || c.CaptureSweepInterval <= 0 {
		return fmt.Errorf("capture TTL and sweep interval must be positive")
	}
	if c.HeartbeatWindow <= c.LivenessCheckInterval {
		return fmt.Errorf("HEARTBEAT_WINDOW (%s) must exceed LIVENESS_CHECK_INTERVAL (%s)",
			c.HeartbeatWindow, c.LivenessCheckInterval)
	}
	return nil
}

// RedisAddr はValkey接続文字列を返す。
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

// AudioBufferDuration は音声リングバッファの保持時間を返す。
func (c *Config) AudioBufferDuration() time.Duration {
	return time.Duration(c.AudioBufferSeconds) * time.Second
}
