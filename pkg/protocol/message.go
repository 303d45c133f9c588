// Package protocol はデバイス・クラウド・TPA間のメッセージ定義を提供する。
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// MessageType はJSONメッセージの種別。
type MessageType string

// デバイス → クラウド
const (
	TypeConnectionInit         MessageType = "connection_init"
	TypeStartApp               MessageType = "start_app"
	TypeStopApp                MessageType = "stop_app"
	TypeButtonPress            MessageType = "button_press"
	TypeHeadPosition           MessageType = "head_position"
	TypeGlassesBattery         MessageType = "glasses_battery_update"
	TypePhoneBattery           MessageType = "phone_battery_update"
	TypeGlassesConnectionState MessageType = "glasses_connection_state"
	TypeLocationUpdate         MessageType = "location_update"
	TypeCalendarEvent          MessageType = "calendar_event"
	TypeVAD                    MessageType = "VAD"
	TypePhoneNotification      MessageType = "phone_notification"
	TypeCoreStatus             MessageType = "core_status_update"
	TypeTranscription          MessageType = "transcription"
	TypeUserDatetime           MessageType = "user_datetime"
	TypeCustomMessage          MessageType = "custom_message"
)

// クラウド → デバイス
const (
	TypeConnectionAck         MessageType = "connection_ack"
	TypeConnectionError       MessageType = "connection_error"
	TypeAuthError             MessageType = "auth_error"
	TypeAppStateChange        MessageType = "app_state_change"
	TypeMicrophoneStateChange MessageType = "microphone_state_change"
	TypeDisplayEvent          MessageType = "display_event"
	TypePhotoRequest          MessageType = "photo_request"
	TypePhotoResponse         MessageType = "photo_response"
)

// TPA ⇄ クラウド
const (
	TypeTpaConnectionInit  MessageType = "tpa_connection_init"
	TypeTpaConnectionAck   MessageType = "tpa_connection_ack"
	TypeTpaConnectionError MessageType = "tpa_connection_error"
	TypeSubscriptionUpdate MessageType = "subscription_update"
	TypeDashboardUpdate    MessageType = "dashboard_update"
	TypeDataStream         MessageType = "data_stream"
	TypeSettingsUpdate     MessageType = "settings_update"
	TypeAppStopped         MessageType = "app_stopped"
)

// Envelope は受信メッセージの種別判定用ヘッダ。
type Envelope struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// DecodeEnvelope はJSONメッセージの種別を読み取る。
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", apperr.ErrInvalidMessage, err)
	}
	if env.Type == "" {
		return Envelope{}, apperr.NewProtocolError("", "missing type")
	}
	return env, nil
}

// Decode はJSONメッセージを指定の構造体にデコードする。
func Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidMessage, err)
	}
	return nil
}

// ConnectionInit はデバイスの接続初期化メッセージ。
type ConnectionInit struct {
	Type         MessageType `json:"type"`
	GlassesModel string      `json:"glassesModel,omitempty"`
}

// ConnectionAck は接続初期化への応答。現在のアプリ状態を含む。
type ConnectionAck struct {
	Type      MessageType           `json:"type"`
	SessionID string                `json:"sessionId"`
	AppState  *model.AppStateChange `json:"appState"`
	Timestamp int64                 `json:"timestamp"`
}

// ConnectionError は接続エラー通知。
type ConnectionError struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// AppStateChange はアプリ状態変化の通知。
type AppStateChange struct {
	Type MessageType `json:"type"`
	model.AppStateChange
}

// AppCommand はstart_app / stop_appメッセージ。
type AppCommand struct {
	Type        MessageType `json:"type"`
	PackageName string      `json:"packageName"`
}

// ButtonPress はボタン押下イベント。
type ButtonPress struct {
	Type      MessageType `json:"type"`
	ButtonID  string      `json:"buttonId"`
	PressType string      `json:"pressType"`
	Timestamp int64       `json:"timestamp"`
}

// MicrophoneStateChange はマイク使用要否の通知。
type MicrophoneStateChange struct {
	Type                MessageType `json:"type"`
	IsMicrophoneEnabled bool        `json:"isMicrophoneEnabled"`
	Timestamp           int64       `json:"timestamp"`
}

// 表示ビュー
const (
	ViewMain      = "main"
	ViewDashboard = "dashboard"
)

// DisplayEvent はTPAからデバイスへの表示要求。
type DisplayEvent struct {
	Type        MessageType     `json:"type"`
	PackageName string          `json:"packageName"`
	View        string          `json:"view"`
	Layout      json.RawMessage `json:"layout"`
	DurationMs  int64           `json:"durationMs,omitempty"`
	Timestamp   int64           `json:"timestamp"`
}

// CaptureKind はキャプチャ種別。
type CaptureKind string

const (
	CapturePhoto CaptureKind = "photo"
	CaptureVideo CaptureKind = "video"
)

// PhotoRequest は撮影要求。TPA → クラウドでは RequestID はTPA側の任意ID、
// クラウド → デバイスではクラウドが採番したIDを表す。
type PhotoRequest struct {
	Type          MessageType `json:"type"`
	RequestID     string      `json:"requestId,omitempty"`
	AppID         string      `json:"appId,omitempty"`
	Kind          CaptureKind `json:"kind,omitempty"`
	SaveToGallery bool        `json:"saveToGallery"`
	Timestamp     int64       `json:"timestamp,omitempty"`
}

// PhotoResponse は撮影結果の通知。
type PhotoResponse struct {
	Type           MessageType `json:"type"`
	RequestID      string      `json:"requestId"`
	PhotoURL       string      `json:"photoUrl"`
	MimeType       string      `json:"mimeType,omitempty"`
	SavedToGallery bool        `json:"savedToGallery"`
	Timestamp      int64       `json:"timestamp"`
}

// Transcription は文字起こしイベント。
type Transcription struct {
	Type      MessageType `json:"type"`
	Text      string      `json:"text"`
	IsFinal   bool        `json:"isFinal"`
	Language  string      `json:"transcribeLanguage,omitempty"`
	StartTime int64       `json:"startTime"`
	EndTime   int64       `json:"endTime"`
	SpeakerID string      `json:"speakerId,omitempty"`
}

// UserDatetime はクライアントが報告する現地時刻。
type UserDatetime struct {
	Type     MessageType `json:"type"`
	Datetime string      `json:"datetime"`
}

// TpaConnectionInit はTPAの接続初期化メッセージ。
type TpaConnectionInit struct {
	Type        MessageType `json:"type"`
	PackageName string      `json:"packageName"`
	SessionID   string      `json:"sessionId"`
	APIKey      string      `json:"apiKey"`
}

// TpaConnectionAck はTPA接続初期化への応答。
type TpaConnectionAck struct {
	Type      MessageType     `json:"type"`
	SessionID string          `json:"sessionId"`
	Settings  json.RawMessage `json:"settings,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// TpaConnectionError はTPA接続エラー通知。
type TpaConnectionError struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// SubscriptionUpdate はTPAの購読更新。
type SubscriptionUpdate struct {
	Type          MessageType  `json:"type"`
	PackageName   string       `json:"packageName"`
	SessionID     string       `json:"sessionId"`
	Subscriptions []StreamType `json:"subscriptions"`
}

// DataStream はデバイスイベントをTPAへ配信するラッパー。
type DataStream struct {
	Type       MessageType     `json:"type"`
	SessionID  string          `json:"sessionId"`
	StreamType StreamType      `json:"streamType"`
	Data       json.RawMessage `json:"data"`
	Timestamp  int64           `json:"timestamp"`
}

// SettingsUpdate はTPAへの設定更新通知。
type SettingsUpdate struct {
	Type        MessageType     `json:"type"`
	PackageName string          `json:"packageName"`
	Settings    json.RawMessage `json:"settings"`
	Timestamp   int64           `json:"timestamp"`
}

// AppStopped はTPAへの停止通知。
type AppStopped struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"sessionId"`
	Reason    string      `json:"reason"`
	Timestamp int64       `json:"timestamp"`
}

// GlassesConnectionState はグラスとの接続状態の通知。
type GlassesConnectionState struct {
	Type      MessageType `json:"type"`
	Status    string      `json:"status"`
	ModelName string      `json:"modelName,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// HeadPosition は頭部の向きの通知。
type HeadPosition struct {
	Type      MessageType `json:"type"`
	Position  string      `json:"position"`
	Timestamp int64       `json:"timestamp"`
}

// GlassesBatteryUpdate はグラスのバッテリー残量の通知。
type GlassesBatteryUpdate struct {
	Type      MessageType `json:"type"`
	Level     int         `json:"level"`
	Charging  bool        `json:"charging"`
	Timestamp int64       `json:"timestamp"`
}
