package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/config"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
)

// galleryStore はGalleryStoreインターフェースの実装。
type galleryStore struct {
	vc *ValkeyClient
}

// NewGalleryStore は新しいGalleryStoreを生成する。
func NewGalleryStore(vc *ValkeyClient) GalleryStore {
	return &galleryStore{vc: vc}
}

// Add は撮影結果をギャラリーの先頭に追加し、上限件数を超えた古い要素を削除する。
func (s *galleryStore) Add(ctx context.Context, photo *model.GalleryPhoto) error {
	data, err := json.Marshal(photo)
	if err != nil {
		return fmt.Errorf("failed to marshal gallery photo: %w", err)
	}
	key := KeyPrefixGallery + photo.UserID
	pipe := s.vc.Client().TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, config.GalleryMaxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("LPUSH", key, err)
	}
	return nil
}

// List は新しい順に最大limit件を返す。
func (s *galleryStore) List(ctx context.Context, userID string, limit int) ([]*model.GalleryPhoto, error) {
	if limit <= 0 {
		return nil, nil
	}
	items, err := s.vc.Client().LRange(ctx, KeyPrefixGallery+userID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, unavailable("LRANGE", KeyPrefixGallery+userID, err)
	}
	photos := make([]*model.GalleryPhoto, 0, len(items))
	for _, item := range items {
		var p model.GalleryPhoto
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gallery photo: %w", err)
		}
		photos = append(photos, &p)
	}
	return photos, nil
}
