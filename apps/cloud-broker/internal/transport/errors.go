package transport

import (
	"errors"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
)

var (
	// ErrConnectionClosed は閉じた接続へ送信しようとした場合のエラー
	ErrConnectionClosed = apperr.ErrConnectionClosed

	// ErrSendQueueFull は送信キューが溢れた場合のエラー。接続は閉じられる
	ErrSendQueueFull = errors.New("send queue full")
)
