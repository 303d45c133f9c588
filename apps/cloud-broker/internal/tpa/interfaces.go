// Package tpa はTPAサーバーの登録・ハートビート監視・再起動時の復旧を行う。
package tpa

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=tpa

import (
	"context"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// RegistrationStore はTPAサーバー登録の永続化インターフェース。
type RegistrationStore interface {
	Save(ctx context.Context, reg *model.TpaServerRegistration) error
	Get(ctx context.Context, registrationID string) (*model.TpaServerRegistration, error)
	List(ctx context.Context) ([]*model.TpaServerRegistration, error)
	UpdateHeartbeat(ctx context.Context, registrationID string, atMillis int64) error
	SetStale(ctx context.Context, registrationID string, stale bool) error
}

// AppCatalog はAPIキー照合に使うアプリカタログのインターフェース。
type AppCatalog interface {
	GetApp(ctx context.Context, packageName string) (*model.App, error)
}

// AppReconnector はセッション内のアプリ接続を張り直すインターフェース。
type AppReconnector interface {
	ReconnectApp(ctx context.Context, sessionID, packageName, webhookURL string) error
}
