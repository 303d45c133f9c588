package valkey

import (
	"context"
	"errors"
	"fmt"

	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

// ErrNilOptions はOptionsが指定されていない場合のエラー
var ErrNilOptions = errors.New("valkey: options are required")

// Connect はクライアントを生成し、PINGで疎通を確認してから返す。
// PINGはctxとプロファイルのDialTimeoutのうち短い方で打ち切る。
func Connect(ctx context.Context, opts *Options) (*redis.Client, error) {
	if opts == nil {
		return nil, ErrNilOptions
	}
	if opts.Profile.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Profile.DialTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts.redisOptions())
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping は疎通確認を行う。失敗時はErrValkeyConnectionでラップする。
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}
	return nil
}

// IsKeyNotFound はキーが存在しないことを示すエラーかどうかを判定する。
func IsKeyNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
