package session

import "github.com/oyaguma3/glasses-session-broker/pkg/apperr"

var (
	// ErrSessionNotFound はセッションが見つからない場合のエラー
	ErrSessionNotFound = apperr.ErrSessionNotFound

	// ErrDeviceNotConnected はデバイス接続がない状態で送信しようとした場合のエラー
	ErrDeviceNotConnected = apperr.ErrConnectionClosed

	// ErrAppNotConnected はアプリが接続確定していない場合のエラー
	ErrAppNotConnected = apperr.ErrAppNotRunning
)
