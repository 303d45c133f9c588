package handler

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=handler

import (
	"context"
	"encoding/json"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/capture"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/dispatch"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/tpa"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// TokenVerifier はデバイスのコアトークンを検証する
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// DeviceMessageHandler はデバイス接続のメッセージを処理する
type DeviceMessageHandler interface {
	HandleText(ctx context.Context, sess *session.UserSession, data []byte) error
	HandleBinary(sess *session.UserSession, data []byte) error
	HandleClose(sess *session.UserSession, conn session.Connection, abnormal bool)
}

// TpaMessageHandler はTPA接続のメッセージを処理する
type TpaMessageHandler interface {
	HandleInit(ctx context.Context, conn session.Connection, data []byte) (*dispatch.TpaBinding, error)
	HandleMessage(ctx context.Context, b *dispatch.TpaBinding, data []byte) error
	HandleClose(ctx context.Context, b *dispatch.TpaBinding, conn session.Connection, abnormal bool)
}

// TpaServerRegistry はTPAサーバーの登録と死活監視を行う
type TpaServerRegistry interface {
	Register(ctx context.Context, req tpa.RegisterRequest) (*model.TpaServerRegistration, error)
	Heartbeat(ctx context.Context, registrationID string) (bool, error)
	OnRestart(ctx context.Context, registrationID string) (int, error)
}

// KeyVerifier はTPAのAPIキーを検証する
type KeyVerifier interface {
	VerifyAPIKey(ctx context.Context, packageName, apiKey string) error
}

// CaptureResolver はアップロードされた写真を保留中のキャプチャ要求に結び付ける
type CaptureResolver interface {
	Claim(requestID string) (capture.PendingRequest, capture.Outcome)
	Release(req capture.PendingRequest) bool
	Complete(ctx context.Context, req capture.PendingRequest, result capture.Result)
}

// PhotoStore はアップロードされた写真データを保存する
type PhotoStore interface {
	Put(ctx context.Context, requestID, userID, mimeType string, data []byte) error
	Get(ctx context.Context, requestID string) (*store.Photo, error)
}

// GalleryReader はユーザーのギャラリーを読み取る
type GalleryReader interface {
	List(ctx context.Context, userID string, limit int) ([]*model.GalleryPhoto, error)
}

// AppStateController は内部APIからのアプリ操作を受け付ける
type AppStateController interface {
	TriggerAppStateChange(ctx context.Context, userID string) (*model.AppStateChange, error)
	StopAppForUninstall(ctx context.Context, userID, packageName string)
	PushSettings(ctx context.Context, userID, packageName string, settings json.RawMessage) error
}
