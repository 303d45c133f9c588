package uplink

import (
	"errors"
	"fmt"

	"github.com/oyaguma3/glasses-session-broker/pkg/httputil"
)

var (
	// ErrUnauthorized はクラウドがトークンを拒否した場合のエラー。再接続しない。
	ErrUnauthorized = errors.New("core token rejected")
	// ErrRejected はクラウドが接続初期化を拒否した場合のエラー
	ErrRejected = errors.New("connection rejected by cloud")
	// ErrOutboxFull は送信待ちメッセージが上限に達した場合のエラー
	ErrOutboxFull = errors.New("uplink outbox full")
)

// APIError はクラウドのHTTP APIが返したエラー。
type APIError struct {
	StatusCode int
	Message    string
	Details    *httputil.ProblemDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloud api error: status=%d, message=%s", e.StatusCode, e.Message)
}
