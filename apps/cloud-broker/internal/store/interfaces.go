package store

import (
	"context"
	"encoding/json"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// AppCatalog はCRUD層が管理するアプリカタログの読み取りを定義する
type AppCatalog interface {
	// GetApp はパッケージ名でアプリを取得する（未登録時はErrKeyNotFound）
	GetApp(ctx context.Context, packageName string) (*model.App, error)
	// InstalledApps はユーザーのインストール済みアプリをパッケージ名順で返す
	InstalledApps(ctx context.Context, userID string) ([]*model.App, error)
}

// RegistrationStore はTPAサーバー登録の永続化を定義する
type RegistrationStore interface {
	// Save は登録を保存し、インデックスを更新する
	Save(ctx context.Context, reg *model.TpaServerRegistration) error
	// Get は登録IDで登録を取得する（未登録時はErrKeyNotFound）
	Get(ctx context.Context, registrationID string) (*model.TpaServerRegistration, error)
	// ListByPackage はパッケージ名に紐づく登録を返す
	ListByPackage(ctx context.Context, packageName string) ([]*model.TpaServerRegistration, error)
	// List は全登録を返す
	List(ctx context.Context) ([]*model.TpaServerRegistration, error)
	// UpdateHeartbeat は最終ハートビート時刻を更新する
	UpdateHeartbeat(ctx context.Context, registrationID string, atMillis int64) error
	// SetStale はstaleフラグを更新する
	SetStale(ctx context.Context, registrationID string, stale bool) error
}

// GalleryStore はギャラリーへの保存を定義する
type GalleryStore interface {
	// Add は撮影結果をギャラリーの先頭に追加する
	Add(ctx context.Context, photo *model.GalleryPhoto) error
	// List は新しい順に最大limit件を返す
	List(ctx context.Context, userID string, limit int) ([]*model.GalleryPhoto, error)
}

// PhotoStore はアップロードされた写真データの一時保存を定義する
type PhotoStore interface {
	// Put は写真データを保存する
	Put(ctx context.Context, requestID, userID, mimeType string, data []byte) error
	// Get は写真データを取得する（未存在時はErrKeyNotFound）
	Get(ctx context.Context, requestID string) (*Photo, error)
}

// SettingsStore はユーザーごとのアプリ設定を定義する
type SettingsStore interface {
	// Get は設定JSONを取得する（未設定時はnil）
	Get(ctx context.Context, userID, packageName string) (json.RawMessage, error)
	// Put は設定JSONを保存する
	Put(ctx context.Context, userID, packageName string, settings json.RawMessage) error
}
