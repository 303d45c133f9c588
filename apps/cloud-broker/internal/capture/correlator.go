package capture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// Correlator は撮影要求を保持し、アップロードと1対1で対応付ける。
// 解決は要求の取り出しと同時に行うため、同一IDの解決は最初の1回だけ成功する。
type Correlator struct {
	gallery GalleryStore
	sink    ResultSink
	clock   clock.WithTicker
	ttl     time.Duration
	fields  *logging.CommonFields

	mu      sync.Mutex
	pending map[string]*PendingRequest
	// 期限切れで削除したIDと削除時刻。遅延アップロードをnot_foundと区別する
	expiredIDs map[string]time.Time
}

// NewCorrelator は新しいCorrelatorを生成する。
func NewCorrelator(gallery GalleryStore, sink ResultSink, clk clock.WithTicker, ttl time.Duration, fields *logging.CommonFields) *Correlator {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &Correlator{
		gallery:    gallery,
		sink:       sink,
		clock:      clk,
		ttl:        ttl,
		fields:     fields,
		pending:    make(map[string]*PendingRequest),
		expiredIDs: make(map[string]time.Time),
	}
}

// Create は撮影要求を登録し、採番した要求を返す。
func (c *Correlator) Create(userID, origin string, kind protocol.CaptureKind, saveToGallery bool, clientRequestID string) PendingRequest {
	if kind == "" {
		kind = protocol.CapturePhoto
	}
	now := c.clock.Now()
	req := &PendingRequest{
		RequestID:       uuid.NewString(),
		UserID:          userID,
		Origin:          origin,
		Kind:            kind,
		CreatedAt:       now,
		ExpiresAt:       now.Add(c.ttl),
		SaveToGallery:   saveToGallery,
		ClientRequestID: clientRequestID,
	}

	c.mu.Lock()
	c.pending[req.RequestID] = req
	c.mu.Unlock()

	slog.Info("capture request created",
		logging.FieldEventID, logging.EventCaptureCreate,
		logging.FieldRequestID, req.RequestID,
		c.fields.WithUserID(userID),
		"origin", origin,
		"kind", string(kind),
		"save_to_gallery", saveToGallery,
	)
	return *req
}

// Peek は未解決かつ期限内の要求を返す。要求は消費しない。
func (c *Correlator) Peek(requestID string) (PendingRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	req, ok := c.pending[requestID]
	if !ok || req.expired(c.clock.Now()) {
		return PendingRequest{}, false
	}
	return *req, true
}

// Len は未解決の要求数を返す。
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Resolve は要求を取り出して結果を届ける。ClaimとCompleteを続けて呼ぶのと同じ。
// 未知・解決済みはOutcomeNotFound、期限切れはOutcomeExpiredを返し、副作用はない。
func (c *Correlator) Resolve(ctx context.Context, requestID string, result Result) Outcome {
	req, outcome := c.Claim(requestID)
	if outcome != OutcomeResolved {
		return outcome
	}
	c.Complete(ctx, req, result)
	return OutcomeResolved
}

// Claim は要求を1回だけ取り出す。同一IDの2回目以降はOutcomeNotFoundになる。
// 取り出した要求はCompleteで完了させるか、Releaseで保留に戻す。
func (c *Correlator) Claim(requestID string) (PendingRequest, Outcome) {
	req, outcome := c.claim(requestID)
	if outcome != OutcomeResolved {
		eventID := logging.EventCaptureUnknown
		if outcome == OutcomeExpired {
			eventID = logging.EventCaptureExpired
		}
		slog.Warn("capture result rejected",
			logging.FieldEventID, eventID,
			logging.FieldRequestID, requestID,
			"outcome", string(outcome),
		)
	}
	return req, outcome
}

// Release はClaimで取り出した要求を保留に戻す。
// 期限切れ、または同じIDが既に保留中の場合は戻さずfalseを返す。
func (c *Correlator) Release(req PendingRequest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.pending[req.RequestID]; exists {
		return false
	}
	now := c.clock.Now()
	if req.expired(now) {
		c.expiredIDs[req.RequestID] = now
		return false
	}
	c.pending[req.RequestID] = &req
	return true
}

// Complete は取り出し済みの要求を完了させる。
// saveToGalleryならギャラリーに保存してから要求元へPhotoResponseを届ける。
func (c *Correlator) Complete(ctx context.Context, req PendingRequest, result Result) {
	saved := false
	if req.SaveToGallery {
		saved = c.saveToGallery(ctx, req, result)
	}

	respID := req.RequestID
	if req.Origin != OriginSystem && req.ClientRequestID != "" {
		respID = req.ClientRequestID
	}
	resp := &protocol.PhotoResponse{
		Type:           protocol.TypePhotoResponse,
		RequestID:      respID,
		PhotoURL:       result.PhotoURL,
		MimeType:       result.MimeType,
		SavedToGallery: saved,
		Timestamp:      c.clock.Now().UnixMilli(),
	}
	if err := c.sink.Deliver(ctx, req, resp); err != nil {
		slog.Warn("capture result not delivered",
			logging.FieldEventID, logging.EventCaptureForward,
			logging.FieldRequestID, req.RequestID,
			c.fields.WithUserID(req.UserID),
			"origin", req.Origin,
			logging.FieldError, err.Error(),
		)
	}

	slog.Info("capture request resolved",
		logging.FieldEventID, logging.EventCaptureResolve,
		logging.FieldRequestID, req.RequestID,
		c.fields.WithUserID(req.UserID),
		"origin", req.Origin,
		"saved_to_gallery", saved,
		logging.FieldLatencyMs, c.clock.Since(req.CreatedAt).Milliseconds(),
	)
}

// claim は要求を取り出す。取り出せるのは1回だけ。
func (c *Correlator) claim(requestID string) (PendingRequest, Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, ok := c.pending[requestID]
	if !ok {
		if _, wasExpired := c.expiredIDs[requestID]; wasExpired {
			return PendingRequest{}, OutcomeExpired
		}
		return PendingRequest{}, OutcomeNotFound
	}
	delete(c.pending, requestID)

	now := c.clock.Now()
	if req.expired(now) {
		c.expiredIDs[requestID] = now
		return PendingRequest{}, OutcomeExpired
	}
	return *req, OutcomeResolved
}

func (c *Correlator) saveToGallery(ctx context.Context, req PendingRequest, result Result) bool {
	err := c.gallery.Add(ctx, &model.GalleryPhoto{
		RequestID: req.RequestID,
		UserID:    req.UserID,
		Origin:    req.Origin,
		PhotoURL:  result.PhotoURL,
		MimeType:  result.MimeType,
		Size:      result.Size,
		CreatedAt: c.clock.Now().UnixMilli(),
	})
	if err != nil {
		slog.Warn("gallery save failed",
			logging.FieldEventID, logging.EventGallerySaveFail,
			logging.FieldRequestID, req.RequestID,
			c.fields.WithUserID(req.UserID),
			logging.FieldError, err.Error(),
		)
		return false
	}
	return true
}

// SweepExpired は期限切れの要求をすべて削除し、削除件数を返す。
// 期限切れIDの記録もTTLを過ぎたものは破棄する。
func (c *Correlator) SweepExpired() int {
	now := c.clock.Now()

	c.mu.Lock()
	removed := 0
	for id, req := range c.pending {
		if req.expired(now) {
			delete(c.pending, id)
			c.expiredIDs[id] = now
			removed++
		}
	}
	for id, at := range c.expiredIDs {
		if now.Sub(at) >= c.ttl {
			delete(c.expiredIDs, id)
		}
	}
	c.mu.Unlock()

	if removed > 0 {
		slog.Info("expired capture requests swept",
			logging.FieldEventID, logging.EventCaptureSweep,
			"count", removed,
		)
	}
	return removed
}

// Run はctxが終了するまで一定間隔でSweepExpiredを実行する。
func (c *Correlator) Run(ctx context.Context, interval time.Duration) {
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			c.SweepExpired()
		}
	}
}
