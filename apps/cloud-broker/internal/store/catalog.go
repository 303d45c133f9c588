package store

import (
	"context"
	"sort"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/redis/go-redis/v9"
)

// appCatalog はAppCatalogインターフェースの実装。
type appCatalog struct {
	vc *ValkeyClient
}

// NewAppCatalog は新しいAppCatalogを生成する。
func NewAppCatalog(vc *ValkeyClient) AppCatalog {
	return &appCatalog{vc: vc}
}

// GetApp はパッケージ名でアプリを取得する。
func (c *appCatalog) GetApp(ctx context.Context, packageName string) (*model.App, error) {
	m, err := c.vc.Client().HGetAll(ctx, KeyPrefixApp+packageName).Result()
	if err != nil {
		return nil, unavailable("HGETALL", KeyPrefixApp+packageName, err)
	}
	if len(m) == 0 {
		return nil, ErrKeyNotFound
	}
	return toApp(packageName, m)
}

// InstalledApps はユーザーのインストール済みアプリを取得する。
// 集合に含まれていてもカタログから削除済みのアプリは除外する。
func (c *appCatalog) InstalledApps(ctx context.Context, userID string) ([]*model.App, error) {
	names, err := c.vc.Client().SMembers(ctx, KeyPrefixUserApps+userID).Result()
	if err != nil {
		return nil, unavailable("SMEMBERS", KeyPrefixUserApps+userID, err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	pipe := c.vc.Client().Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.HGetAll(ctx, KeyPrefixApp+name)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, unavailable("PIPELINE", KeyPrefixApp+"*", err)
	}

	apps := make([]*model.App, 0, len(names))
	for i, cmd := range cmds {
		m := cmd.Val()
		if len(m) == 0 {
			continue
		}
		app, err := toApp(names[i], m)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func toApp(packageName string, m map[string]string) (*model.App, error) {
	var app model.App
	if err := MapToStruct(m, &app); err != nil {
		return nil, err
	}
	if app.PackageName == "" {
		app.PackageName = packageName
	}
	if app.AppType == "" {
		app.AppType = model.AppTypeStandard
	}
	return &app, nil
}
