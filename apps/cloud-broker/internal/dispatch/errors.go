package dispatch

import (
	"errors"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
)

var (
	// ErrSessionNotFound はセッションが見つからない場合のエラー
	ErrSessionNotFound = apperr.ErrSessionNotFound

	// ErrInvalidMessage は不正なメッセージを受信した場合のエラー
	ErrInvalidMessage = apperr.ErrInvalidMessage

	// ErrUnsupportedMessage は処理対象外のメッセージ種別を受信した場合のエラー
	ErrUnsupportedMessage = errors.New("unsupported message type")
)
