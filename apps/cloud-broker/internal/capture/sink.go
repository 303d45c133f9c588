package capture

import (
	"context"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
)

// SessionSink はセッション経由で撮影結果を届けるResultSink。
// システム要求はデバイスへ、TPA要求はそのTPA接続へ送る。
type SessionSink struct {
	registry *session.Registry
}

// NewSessionSink は新しいSessionSinkを生成する。
func NewSessionSink(registry *session.Registry) *SessionSink {
	return &SessionSink{registry: registry}
}

// Deliver はResultSinkを実装する。
func (s *SessionSink) Deliver(_ context.Context, req PendingRequest, resp *protocol.PhotoResponse) error {
	sess, ok := s.registry.Lookup(req.UserID)
	if !ok {
		return session.ErrSessionNotFound
	}
	if req.Origin == OriginSystem {
		return sess.SendToDevice(resp)
	}
	return sess.SendToApp(req.Origin, resp)
}
