package lifecycle

import "github.com/oyaguma3/glasses-session-broker/pkg/apperr"

var (
	// ErrSessionNotFound はセッションが存在しない場合のエラー
	ErrSessionNotFound = apperr.ErrSessionNotFound
	// ErrAppNotFound はアプリがカタログに存在しない場合のエラー
	ErrAppNotFound = apperr.ErrAppNotFound
	// ErrAppNotRunning はアプリがセッション内で起動していない場合のエラー
	ErrAppNotRunning = apperr.ErrAppNotRunning
)
