package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/metrics"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/subscription"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// TpaBinding は初期化済みTPA接続とセッション・アプリの対応。
type TpaBinding struct {
	SessionID   string
	PackageName string
	UserID      string
}

// TpaProcessor はTPAからのメッセージを処理する。
type TpaProcessor struct {
	registry  *session.Registry
	subs      *subscription.Registry
	lifecycle AppLifecycle
	captures  CaptureRequester
	keys      KeyVerifier
	metrics   *metrics.Metrics
	clock     clock.PassiveClock
	fields    *logging.CommonFields
}

// NewTpaProcessor は新しいTpaProcessorを生成する。
func NewTpaProcessor(
	registry *session.Registry,
	subs *subscription.Registry,
	lc AppLifecycle,
	captures CaptureRequester,
	keys KeyVerifier,
	m *metrics.Metrics,
	clk clock.PassiveClock,
	fields *logging.CommonFields,
) *TpaProcessor {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &TpaProcessor{
		registry:  registry,
		subs:      subs,
		lifecycle: lc,
		captures:  captures,
		keys:      keys,
		metrics:   m,
		clock:     clk,
		fields:    fields,
	}
}

// HandleInit はTPA接続の最初のメッセージを処理する。
// 失敗時はtpa_connection_errorを送信してエラーを返す。呼び出し側は接続を閉じる。
func (p *TpaProcessor) HandleInit(ctx context.Context, conn session.Connection, data []byte) (*TpaBinding, error) {
	var init protocol.TpaConnectionInit
	if err := protocol.Decode(data, &init); err != nil {
		return nil, p.initFailed(conn, "", err)
	}
	p.metrics.MessageReceived(metrics.SourceTPA, string(init.Type))
	if init.Type != protocol.TypeTpaConnectionInit {
		return nil, p.initFailed(conn, init.PackageName,
			apperr.NewProtocolError(string(init.Type), "expected tpa_connection_init"))
	}
	if init.PackageName == "" || init.SessionID == "" {
		return nil, p.initFailed(conn, init.PackageName,
			apperr.NewProtocolError(string(init.Type), "missing packageName or sessionId"))
	}
	if err := p.keys.VerifyAPIKey(ctx, init.PackageName, init.APIKey); err != nil {
		return nil, p.initFailed(conn, init.PackageName, err)
	}

	sess, err := p.lifecycle.ConfirmConnection(init.SessionID, init.PackageName, conn)
	if err != nil {
		return nil, p.initFailed(conn, init.PackageName, err)
	}

	ack := &protocol.TpaConnectionAck{
		Type:      protocol.TypeTpaConnectionAck,
		SessionID: sess.ID(),
		Settings:  p.lifecycle.AppSettings(ctx, sess.UserID(), init.PackageName),
		Timestamp: p.clock.Now().UnixMilli(),
	}
	if err := conn.Send(ack); err != nil {
		return nil, err
	}
	return &TpaBinding{SessionID: sess.ID(), PackageName: init.PackageName, UserID: sess.UserID()}, nil
}

// HandleMessage は初期化済みTPA接続のメッセージを処理する。
// セッションが既に存在しない場合はErrSessionNotFoundを返す。
func (p *TpaProcessor) HandleMessage(ctx context.Context, b *TpaBinding, data []byte) error {
	sess, ok := p.registry.LookupBySessionID(b.SessionID)
	if !ok {
		return ErrSessionNotFound
	}
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		return p.reject(b, "", err)
	}
	p.metrics.MessageReceived(metrics.SourceTPA, string(env.Type))

	switch env.Type {
	case protocol.TypeSubscriptionUpdate:
		return p.handleSubscriptionUpdate(sess, b, data)
	case protocol.TypeDisplayEvent, protocol.TypeDashboardUpdate:
		return p.handleDisplay(sess, b, env.Type, data)
	case protocol.TypePhotoRequest:
		return p.handlePhotoRequest(sess, b, data)
	}
	return p.reject(b, env.Type, fmt.Errorf("%w: %s", ErrUnsupportedMessage, env.Type))
}

// HandleClose はTPA接続の終了を処理する。
func (p *TpaProcessor) HandleClose(ctx context.Context, b *TpaBinding, conn session.Connection, abnormal bool) {
	p.lifecycle.HandleAppDisconnect(ctx, b.SessionID, b.PackageName, conn, abnormal)
}

func (p *TpaProcessor) handleSubscriptionUpdate(sess *session.UserSession, b *TpaBinding, data []byte) error {
	var msg protocol.SubscriptionUpdate
	if err := protocol.Decode(data, &msg); err != nil {
		return p.reject(b, protocol.TypeSubscriptionUpdate, err)
	}
	if msg.PackageName != "" && msg.PackageName != b.PackageName {
		return p.reject(b, protocol.TypeSubscriptionUpdate,
			apperr.NewProtocolError(string(msg.Type), "packageName does not match connection"))
	}
	if err := p.subs.Subscribe(sess, b.PackageName, msg.Subscriptions); err != nil {
		return p.reject(b, protocol.TypeSubscriptionUpdate, err)
	}
	p.lifecycle.UpdateMicrophone(sess)
	return nil
}

// handleDisplay は表示要求をデバイスへ中継する。パッケージ名は接続の値で上書きする。
func (p *TpaProcessor) handleDisplay(sess *session.UserSession, b *TpaBinding, msgType protocol.MessageType, data []byte) error {
	var ev protocol.DisplayEvent
	if err := protocol.Decode(data, &ev); err != nil {
		return p.reject(b, msgType, err)
	}
	ev.Type = protocol.TypeDisplayEvent
	ev.PackageName = b.PackageName
	switch {
	case msgType == protocol.TypeDashboardUpdate:
		ev.View = protocol.ViewDashboard
	case ev.View == "":
		ev.View = protocol.ViewMain
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = p.clock.Now().UnixMilli()
	}

	if err := sess.SendToDevice(&ev); err != nil {
		slog.Debug("display event dropped",
			append(p.logFields(logging.EventDisplayRelay, b), logging.FieldError, err.Error())...)
		return nil
	}
	slog.Debug("display event relayed",
		append(p.logFields(logging.EventDisplayRelay, b), "view", ev.View)...)
	return nil
}

// handlePhotoRequest はTPAの撮影要求を登録し、デバイスへ撮影を依頼する。
func (p *TpaProcessor) handlePhotoRequest(sess *session.UserSession, b *TpaBinding, data []byte) error {
	var msg protocol.PhotoRequest
	if err := protocol.Decode(data, &msg); err != nil {
		return p.reject(b, protocol.TypePhotoRequest, err)
	}
	req := p.captures.Create(sess.UserID(), b.PackageName, msg.Kind, msg.SaveToGallery, msg.RequestID)

	return sess.SendToDevice(&protocol.PhotoRequest{
		Type:          protocol.TypePhotoRequest,
		RequestID:     req.RequestID,
		AppID:         b.PackageName,
		Kind:          req.Kind,
		SaveToGallery: req.SaveToGallery,
		Timestamp:     p.clock.Now().UnixMilli(),
	})
}

func (p *TpaProcessor) initFailed(conn session.Connection, packageName string, err error) error {
	p.metrics.ProtocolError(metrics.SourceTPA)
	slog.Warn("TPA connection init rejected",
		logging.FieldEventID, logging.EventProtocolErr,
		logging.FieldPackageName, packageName,
		logging.FieldError, err.Error(),
	)
	_ = conn.Send(&protocol.TpaConnectionError{
		Type:    protocol.TypeTpaConnectionError,
		Message: err.Error(),
	})
	return err
}

func (p *TpaProcessor) reject(b *TpaBinding, msgType protocol.MessageType, err error) error {
	p.metrics.ProtocolError(metrics.SourceTPA)
	slog.Warn("TPA message rejected",
		append(p.logFields(logging.EventProtocolErr, b),
			"type", string(msgType), logging.FieldError, err.Error())...)
	return err
}

func (p *TpaProcessor) logFields(eventID string, b *TpaBinding) []any {
	return append(p.fields.SessionLogFields(eventID, b.SessionID, b.UserID),
		logging.FieldPackageName, b.PackageName)
}
