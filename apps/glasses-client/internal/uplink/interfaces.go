package uplink

import (
	"context"
	"encoding/json"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/connstate"
)

// MicController はクラウドからのマイク使用要否を反映する。
type MicController interface {
	SetEnabled(ctx context.Context, enabled bool)
}

// Glasses はクラウドからの要求をグラスへ反映する。
type Glasses interface {
	DisplayLayout(view string, layout json.RawMessage) error
	RequestPhoto(ctx context.Context, requestID string) error
}

// PhotoUploader は撮影結果をクラウドへアップロードする。
type PhotoUploader interface {
	Upload(ctx context.Context, requestID string, data []byte, mimeType string) (*UploadResult, error)
}

// StateObserver はグラスの接続状態通知を受け付ける。
type StateObserver interface {
	Observe(state connstate.State)
}
