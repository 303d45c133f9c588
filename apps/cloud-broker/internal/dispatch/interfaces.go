// Package dispatch はデバイスおよびTPAから受信したメッセージを処理し、配信先へ中継する。
package dispatch

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=dispatch

import (
	"context"
	"encoding/json"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/capture"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// AppLifecycle はアプリの起動・停止と接続管理のインターフェース。
type AppLifecycle interface {
	StartApp(ctx context.Context, sess *session.UserSession, packageName string) (*model.AppStateChange, error)
	StopApp(ctx context.Context, sess *session.UserSession, packageName, reason string) (*model.AppStateChange, error)
	CurrentState(ctx context.Context, sess *session.UserSession) *model.AppStateChange
	ConfirmConnection(sessionID, packageName string, conn session.Connection) (*session.UserSession, error)
	HandleAppDisconnect(ctx context.Context, sessionID, packageName string, conn session.Connection, abnormal bool)
	AppSettings(ctx context.Context, userID, packageName string) json.RawMessage
	UpdateMicrophone(sess *session.UserSession)
}

// CaptureRequester は撮影要求を登録するインターフェース。
type CaptureRequester interface {
	Create(userID, origin string, kind protocol.CaptureKind, saveToGallery bool, clientRequestID string) capture.PendingRequest
}

// KeyVerifier はTPA接続時のAPIキー検証インターフェース。
type KeyVerifier interface {
	VerifyAPIKey(ctx context.Context, packageName, apiKey string) error
}
