package store

import (
	"context"
	"sort"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/redis/go-redis/v9"
)

// AppStore はアプリカタログの読み取りを提供する。
type AppStore struct {
	client *redis.Client
}

// NewAppStore は新しいAppStoreを生成する。
func NewAppStore(client *redis.Client) *AppStore {
	return &AppStore{client: client}
}

// Get は指定パッケージのアプリを取得する。
func (s *AppStore) Get(ctx context.Context, packageName string) (*model.App, error) {
	cmd := s.client.HGetAll(ctx, AppKey(packageName))
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	if len(cmd.Val()) == 0 {
		return nil, ErrAppNotFound
	}
	var app model.App
	if err := cmd.Scan(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// List は全アプリをパッケージ名順で返す（SCAN使用）。
func (s *AppStore) List(ctx context.Context) ([]*model.App, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	apps := make([]*model.App, 0, len(keys))
	if len(keys) == 0 {
		return apps, nil
	}

	cmds, err := hgetAll(ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	for _, cmd := range cmds {
		if cmd.Err() != nil || len(cmd.Val()) == 0 {
			continue
		}
		var app model.App
		if err := cmd.Scan(&app); err != nil {
			continue
		}
		apps = append(apps, &app)
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].PackageName < apps[j].PackageName
	})
	return apps, nil
}

// Count はカタログ上のアプリ数を返す。
func (s *AppStore) Count(ctx context.Context) (int64, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}

func (s *AppStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, PrefixApp+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
