package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
)

// Circuit Breaker設定（TPAサーバーのホスト単位）
const (
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// WebSocket設定
const (
	SendQueueSize      = 256
	WriteTimeout       = 5 * time.Second
	TpaInitTimeout     = 10 * time.Second
	MaxMessageBytes    = 1 << 20
	GraceSweepInterval = 10 * time.Second
)

// ギャラリー・写真保存設定
const (
	PhotoTTL          = 24 * time.Hour
	GalleryMaxEntries = 500
)

// ハートビートのスライディングウィンドウで保持する履歴数
const HeartbeatHistorySize = 5

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
