package store

import (
	"context"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
)

// Photo はアップロードされた写真データ。
type Photo struct {
	RequestID string
	UserID    string
	MimeType  string
	Data      []byte
}

// photoStore はPhotoStoreインターフェースの実装。
// 写真データはconfig.PhotoTTLで失効する。
type photoStore struct {
	vc *ValkeyClient
}

// NewPhotoStore は新しいPhotoStoreを生成する。
func NewPhotoStore(vc *ValkeyClient) PhotoStore {
	return &photoStore{vc: vc}
}

// Put は写真データを保存する。
func (s *photoStore) Put(ctx context.Context, requestID, userID, mimeType string, data []byte) error {
	key := KeyPrefixPhoto + requestID
	pipe := s.vc.Client().TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":   userID,
		"mime_type": mimeType,
		"data":      data,
	})
	pipe.Expire(ctx, key, config.PhotoTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("HSET", key, err)
	}
	return nil
}

// Get は写真データを取得する。
func (s *photoStore) Get(ctx context.Context, requestID string) (*Photo, error) {
	m, err := s.vc.Client().HGetAll(ctx, KeyPrefixPhoto+requestID).Result()
	if err != nil {
		return nil, unavailable("HGETALL", KeyPrefixPhoto+requestID, err)
	}
	if len(m) == 0 {
		return nil, ErrKeyNotFound
	}
	return &Photo{
		RequestID: requestID,
		UserID:    m["user_id"],
		MimeType:  m["mime_type"],
		Data:      []byte(m["data"]),
	}, nil
}
