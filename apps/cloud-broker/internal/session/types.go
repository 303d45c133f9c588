package session

import (
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// AppConnState はセッション内のアプリ接続状態。
type AppConnState string

const (
	// AppConnPending はWebhook起動済みでTPAの接続待ち
	AppConnPending AppConnState = "pending"
	// AppConnConnected はTPAが接続済み
	AppConnConnected AppConnState = "connected"
	// AppConnReconnecting はTPAサーバー再起動後の再接続待ち
	AppConnReconnecting AppConnState = "reconnecting"
)

// AppConnection はセッション内の1アプリ分の接続エントリ。
type AppConnection struct {
	PackageName string
	AppType     model.AppType
	State       AppConnState
	Conn        Connection // Pending/Reconnecting中はnilまたは旧接続
	Attempt     uint64     // 起動・再接続ごとに増加する世代番号
	StartedAt   time.Time
}

// Options はセッション生成時の設定。
type Options struct {
	AudioRetention      time.Duration
	TranscriptRetention time.Duration
	GracePeriod         time.Duration
}
