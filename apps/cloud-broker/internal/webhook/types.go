package webhook

import "encoding/json"

// RequestType はWebhookの種別。
type RequestType string

const (
	TypeSessionRequest RequestType = "session_request"
	TypeStopRequest    RequestType = "stop_request"
)

// SessionRequest はTPAにセッションへの接続を依頼するWebhook。
type SessionRequest struct {
	Type         RequestType `json:"type"`
	SessionID    string      `json:"sessionId"`
	UserID       string      `json:"userId"`
	WebsocketURL string      `json:"websocketUrl"`
	Timestamp    int64       `json:"timestamp"`
}

// StopRequest はTPAにセッションからの離脱を通知するWebhook。
type StopRequest struct {
	Type      RequestType `json:"type"`
	SessionID string      `json:"sessionId"`
	UserID    string      `json:"userId"`
	Reason    string      `json:"reason"`
	Timestamp int64       `json:"timestamp"`
}

// SettingsRequest はTPAサーバーへの設定更新通知。
type SettingsRequest struct {
	UserIDForSettings string          `json:"userIdForSettings"`
	Settings          json.RawMessage `json:"settings"`
}
