// Package glasses はスマートグラス本体との接続を抽象化する。
// モデルごとの差は Capabilities で表し、持たない機能は ErrUnsupported を返す。
package glasses

import (
	"context"
	"encoding/json"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/connstate"
)

// Capabilities はグラスのモデルが持つ機能の集合。
type Capabilities struct {
	Model         string
	HasDisplay    bool
	HasMicrophone bool
	HasCamera     bool
	HasSpeaker    bool
}

// Device はグラス本体の操作。
type Device interface {
	Capabilities() Capabilities
	HasMicrophone() bool
	SetEventSink(sink DeviceEventSink)

	Connect(ctx context.Context) error
	Disconnect() error

	DisplayText(view, text string) error
	DisplayLayout(view string, layout json.RawMessage) error
	ClearDisplay() error
	SetMicrophoneEnabled(enabled bool) error
	RequestPhoto(ctx context.Context, requestID string) error
}

// DeviceEventSink はグラスから届くイベントの受け取り先。
type DeviceEventSink interface {
	OnConnectionState(state connstate.State)
	OnButtonPress(buttonID, pressType string)
	OnHeadPosition(position string)
	OnBattery(level int, charging bool)
	OnPhoto(requestID string, data []byte, mimeType string)
	OnAudio(pcm []byte)
}
