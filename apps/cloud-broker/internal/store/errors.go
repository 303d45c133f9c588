package store

import (
	"errors"
	"fmt"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
)

var (
	// ErrValkeyUnavailable はValkeyへのコマンドが失敗した場合のエラー
	ErrValkeyUnavailable = apperr.ErrValkeyCommand

	// ErrKeyNotFound は指定されたキーが存在しない場合のエラー
	ErrKeyNotFound = errors.New("key not found")
)

// unavailable はコマンド失敗を操作名とキー付きのValkeyErrorに包む。
// errors.Is(err, ErrValkeyUnavailable) で判定できる。
func unavailable(op, key string, err error) error {
	return apperr.NewValkeyError(op, key, fmt.Errorf("%w: %v", ErrValkeyUnavailable, err))
}
