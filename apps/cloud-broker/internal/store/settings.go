package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oyaguma3/glasses-session-broker/pkg/valkey"
)

// settingsStore はSettingsStoreインターフェースの実装。
type settingsStore struct {
	vc *ValkeyClient
}

// NewSettingsStore は新しいSettingsStoreを生成する。
func NewSettingsStore(vc *ValkeyClient) SettingsStore {
	return &settingsStore{vc: vc}
}

// Get は設定JSONを取得する。未設定の場合はnilとnilを返す。
func (s *settingsStore) Get(ctx context.Context, userID, packageName string) (json.RawMessage, error) {
	val, err := s.vc.Client().Get(ctx, settingsKey(userID, packageName)).Bytes()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			return nil, nil
		}
		return nil, unavailable("GET", settingsKey(userID, packageName), err)
	}
	return json.RawMessage(val), nil
}

// Put は設定JSONを保存する。
func (s *settingsStore) Put(ctx context.Context, userID, packageName string, settings json.RawMessage) error {
	if !json.Valid(settings) {
		return fmt.Errorf("invalid settings JSON for %s", packageName)
	}
	if err := s.vc.Client().Set(ctx, settingsKey(userID, packageName), []byte(settings), 0).Err(); err != nil {
		return unavailable("SET", settingsKey(userID, packageName), err)
	}
	return nil
}
