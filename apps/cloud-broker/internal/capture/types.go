package capture

import (
	"time"

	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// OriginSystem はシステム（ボタン押下のフォールバック等）からの撮影要求を表す。
const OriginSystem = "system"

// Outcome は解決要求の結果。
type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeExpired  Outcome = "expired"
	OutcomeNotFound Outcome = "not_found"
)

// PendingRequest は未解決の撮影要求。
type PendingRequest struct {
	RequestID       string
	UserID          string
	Origin          string // OriginSystem または要求元パッケージ名
	Kind            protocol.CaptureKind
	CreatedAt       time.Time
	ExpiresAt       time.Time
	SaveToGallery   bool
	ClientRequestID string // TPAが指定した要求ID。応答時にそのまま返す
}

// expired は時刻nowで期限切れかどうかを返す。ExpiresAtちょうどは期限切れとみなす。
func (r *PendingRequest) expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Result はアップロードされた撮影結果。
type Result struct {
	PhotoURL string
	MimeType string
	Size     int64
}
