// Package lifecycle はセッション内のTPA起動・停止とアプリ状態通知を管理する。
package lifecycle

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=lifecycle

import (
	"context"
	"encoding/json"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// AppCatalog はアプリカタログの読み取りインターフェース。
type AppCatalog interface {
	GetApp(ctx context.Context, packageName string) (*model.App, error)
	InstalledApps(ctx context.Context, userID string) ([]*model.App, error)
}

// WebhookClient はTPAサーバーへの通知インターフェース。
type WebhookClient interface {
	TriggerSessionRequest(ctx context.Context, webhookURL, sessionID, userID string) error
	TriggerStop(ctx context.Context, webhookURL, sessionID, userID, reason string) error
	PushSettings(ctx context.Context, serverURL, userID string, settings []byte) error
}

// SettingsStore はユーザーごとのアプリ設定のインターフェース。
type SettingsStore interface {
	Get(ctx context.Context, userID, packageName string) (json.RawMessage, error)
	Put(ctx context.Context, userID, packageName string, settings json.RawMessage) error
}
