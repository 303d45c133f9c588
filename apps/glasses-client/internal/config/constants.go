package config

import "time"

// エンドポイント
const (
	GlassesWSPath   = "/glasses-ws"
	PhotoUploadPath = "/api/photos/upload"
)

// マイク経路設定
const (
	// MaxScoRetries はBluetooth経路の初回試行後に許す再試行回数
	MaxScoRetries = 3
	// ScoRetryInterval はBluetooth経路の再試行の間隔
	ScoRetryInterval = 500 * time.Millisecond
)

// アップリンク設定
const (
	OutboxSize            = 64
	WriteTimeout          = 5 * time.Second
	ReconnectInitialDelay = 500 * time.Millisecond
	ShutdownTimeout       = 5 * time.Second
)
