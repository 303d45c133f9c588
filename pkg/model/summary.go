package model

// SessionSummary は内部API向けのセッション概要。
// 時刻はすべてUnixミリ秒。
type SessionSummary struct {
	SessionID         string   `json:"sessionId"`
	UserID            string   `json:"userId"`
	CreatedAt         int64    `json:"createdAt"`
	DeviceConnected   bool     `json:"deviceConnected"`
	DisconnectedSince int64    `json:"disconnectedSince,omitempty"`
	RunningApps       []string `json:"runningApps"`
	AudioBufferedMs   int64    `json:"audioBufferedMs"`
}

// BrokerHealth はGET /health のレスポンス。
type BrokerHealth struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
