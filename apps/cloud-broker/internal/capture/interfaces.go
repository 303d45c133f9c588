// Package capture は撮影要求とアップロード結果の対応付けを管理する。
package capture

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=capture

import (
	"context"

	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// GalleryStore はギャラリーへの保存インターフェース。
type GalleryStore interface {
	Add(ctx context.Context, photo *model.GalleryPhoto) error
}

// ResultSink は撮影結果を要求元へ届けるインターフェース。
type ResultSink interface {
	Deliver(ctx context.Context, req PendingRequest, resp *protocol.PhotoResponse) error
}
