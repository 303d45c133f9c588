package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRegistrationNotFound は登録が見つからない場合のエラー
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrAppNotFound はアプリが見つからない場合のエラー
	ErrAppNotFound = errors.New("app not found")
)

// Store はValkeyへのアクセスを提供する。
type Store struct {
	client *redis.Client
}

// New は新しいStoreを生成する。
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Registrations は登録ストアを返す。
func (s *Store) Registrations() *RegistrationStore {
	return NewRegistrationStore(s.client)
}

// Apps はアプリカタログストアを返す。
func (s *Store) Apps() *AppStore {
	return NewAppStore(s.client)
}

// Ping は接続確認を行う。
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close は接続をクローズする。
func (s *Store) Close() error {
	return s.client.Close()
}

// hgetAll はキー群をPipelineで一括取得する。
// 存在しないキーは空mapとして返る。
func hgetAll(ctx context.Context, client *redis.Client, keys []string) ([]*redis.MapStringStringCmd, error) {
	pipe := client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return cmds, nil
}
