// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// 認証関連エラー
var (
	// ErrInvalidToken はデバイストークン検証失敗エラー
	ErrInvalidToken = errors.New("invalid core token")
	// ErrInvalidAPIKey はTPAのAPIキー不一致エラー
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// セッション関連エラー
var (
	// ErrSessionNotFound はセッションが見つからない場合のエラー
	ErrSessionNotFound = errors.New("session not found")
	// ErrConnectionClosed は接続が既に閉じている場合のエラー
	ErrConnectionClosed = errors.New("connection closed")
)

// アプリ関連エラー
var (
	// ErrAppNotFound はアプリが見つからない場合のエラー
	ErrAppNotFound = errors.New("app not found")
	// ErrAppNotRunning はアプリが起動していない場合のエラー
	ErrAppNotRunning = errors.New("app not running")
	// ErrRegistrationNotFound はTPAサーバー登録が見つからない場合のエラー
	ErrRegistrationNotFound = errors.New("TPA server registration not found")
)

// キャプチャ関連エラー
var (
	// ErrRequestNotFound はキャプチャ要求が見つからない場合のエラー
	ErrRequestNotFound = errors.New("capture request not found")
	// ErrRequestExpired はキャプチャ要求の有効期限切れエラー
	ErrRequestExpired = errors.New("capture request expired")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
	// ErrWebhookCommunication はTPA Webhook通信エラー
	ErrWebhookCommunication = errors.New("webhook communication error")
)

// ErrInvalidMessage は不正なプロトコルメッセージエラー
var ErrInvalidMessage = errors.New("invalid protocol message")
