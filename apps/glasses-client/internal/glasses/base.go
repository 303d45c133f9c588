package glasses

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/connstate"
)

// Base は何もしないグラス実装。接続と切断だけを通知し、
// それ以外の機能は ErrUnsupported を返す。各モデルはBaseを埋め込み、持つ機能だけを上書きする。
type Base struct {
	caps Capabilities

	mu        sync.Mutex
	sink      DeviceEventSink
	connected bool
}

// NewBase は新しいBaseを生成する。
func NewBase(caps Capabilities) *Base {
	return &Base{caps: caps}
}

// Capabilities はモデルの機能集合を返す。
func (b *Base) Capabilities() Capabilities { return b.caps }

// HasMicrophone は内蔵マイクの有無を返す。
func (b *Base) HasMicrophone() bool { return b.caps.HasMicrophone }

// SetEventSink はイベントの受け取り先を設定する。
func (b *Base) SetEventSink(sink DeviceEventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sink = sink
}

// eventSink は設定済みの受け取り先を返す。未設定ならnil。
func (b *Base) eventSink() DeviceEventSink {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sink
}

// Connected は接続済みかどうかを返す。
func (b *Base) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// Connect は接続中、接続済みの順に状態を通知する。
func (b *Base) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.emitState(connstate.Connecting)
	b.mu.Lock()
	b.connected = true
	b.mu.Unlock()
	b.emitState(connstate.Connected)
	return nil
}

// Disconnect は切断を通知する。
func (b *Base) Disconnect() error {
	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()
	b.emitState(connstate.Disconnected)
	return nil
}

func (b *Base) emitState(state connstate.State) {
	if sink := b.eventSink(); sink != nil {
		sink.OnConnectionState(state)
	}
}

func (b *Base) DisplayText(string, string) error            { return ErrUnsupported }
func (b *Base) DisplayLayout(string, json.RawMessage) error { return ErrUnsupported }
func (b *Base) ClearDisplay() error                         { return ErrUnsupported }
func (b *Base) SetMicrophoneEnabled(bool) error             { return ErrUnsupported }
func (b *Base) RequestPhoto(context.Context, string) error  { return ErrUnsupported }
