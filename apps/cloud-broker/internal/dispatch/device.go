package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/capture"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/lifecycle"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/metrics"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/subscription"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// 非同期処理の上限時間
const asyncOpTimeout = 30 * time.Second

// ReasonDeviceClosed はデバイスが接続を明示的に閉じた場合の破棄理由。
const ReasonDeviceClosed = "device closed connection"

// deviceStreams はTPAへそのまま中継するデバイスイベント。
var deviceStreams = map[protocol.MessageType]protocol.StreamType{
	protocol.TypeHeadPosition:           protocol.StreamHeadPosition,
	protocol.TypeGlassesBattery:         protocol.StreamGlassesBattery,
	protocol.TypePhoneBattery:           protocol.StreamPhoneBattery,
	protocol.TypeGlassesConnectionState: protocol.StreamGlassesConnectionState,
	protocol.TypeLocationUpdate:         protocol.StreamLocationUpdate,
	protocol.TypeCalendarEvent:          protocol.StreamCalendarEvent,
	protocol.TypeVAD:                    protocol.StreamVAD,
	protocol.TypePhoneNotification:      protocol.StreamPhoneNotification,
	protocol.TypeCoreStatus:             protocol.StreamCoreStatus,
	protocol.TypeCustomMessage:          protocol.StreamCustomMessage,
}

// DeviceProcessor はデバイスからのメッセージを処理する。
type DeviceProcessor struct {
	registry  *session.Registry
	subs      *subscription.Registry
	lifecycle AppLifecycle
	captures  CaptureRequester
	metrics   *metrics.Metrics
	clock     clock.PassiveClock
	fields    *logging.CommonFields

	wg sync.WaitGroup
}

// NewDeviceProcessor は新しいDeviceProcessorを生成する。
func NewDeviceProcessor(
	registry *session.Registry,
	subs *subscription.Registry,
	lc AppLifecycle,
	captures CaptureRequester,
	m *metrics.Metrics,
	clk clock.PassiveClock,
	fields *logging.CommonFields,
) *DeviceProcessor {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if fields == nil {
		fields = logging.NewCommonFields(nil)
	}
	return &DeviceProcessor{
		registry:  registry,
		subs:      subs,
		lifecycle: lc,
		captures:  captures,
		metrics:   m,
		clock:     clk,
		fields:    fields,
	}
}

// HandleText はデバイスから受信したJSONメッセージを処理する。
// 不正なメッセージはエラーを返すが、接続は維持する。
func (p *DeviceProcessor) HandleText(ctx context.Context, sess *session.UserSession, data []byte) error {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		return p.reject(sess, "", err)
	}
	p.metrics.MessageReceived(metrics.SourceDevice, string(env.Type))

	switch env.Type {
	case protocol.TypeConnectionInit:
		return p.handleConnectionInit(ctx, sess)
	case protocol.TypeStartApp, protocol.TypeStopApp:
		return p.handleAppCommand(ctx, sess, env.Type, data)
	case protocol.TypeButtonPress:
		return p.handleButtonPress(sess, data)
	case protocol.TypeTranscription:
		return p.handleTranscription(sess, data)
	case protocol.TypeUserDatetime:
		var msg protocol.UserDatetime
		if err := protocol.Decode(data, &msg); err != nil {
			return p.reject(sess, env.Type, err)
		}
		sess.SetUserDatetime(msg.Datetime)
		return nil
	}

	if stream, ok := deviceStreams[env.Type]; ok {
		p.route(sess, stream, data)
		return nil
	}
	return p.reject(sess, env.Type, fmt.Errorf("%w: %s", ErrUnsupportedMessage, env.Type))
}

// HandleBinary はデバイスから受信した音声チャンクをバッファへ追加し、購読中のアプリへ中継する。
func (p *DeviceProcessor) HandleBinary(sess *session.UserSession, data []byte) error {
	chunk, err := protocol.DecodeAudioChunk(data)
	if err != nil {
		return p.reject(sess, "audio_chunk", err)
	}
	p.metrics.AudioReceived(len(chunk.Data))

	sess.Audio().Append(session.AudioFrame{
		Seq:       chunk.Seq,
		Timestamp: time.UnixMilli(chunk.Timestamp),
		Duration:  time.Duration(chunk.DurationMs) * time.Millisecond,
		Codec:     chunk.Codec,
		Data:      chunk.Data,
	})

	delivered := 0
	for _, pkg := range p.subs.SubscribersFor(sess, protocol.StreamAudioChunk) {
		if err := sess.SendBinaryToApp(pkg, data); err != nil {
			continue
		}
		delivered++
	}
	p.metrics.EventRouted(string(protocol.StreamAudioChunk), delivered)
	return nil
}

// HandleClose はデバイス接続の終了を処理する。
// 明示的な切断はセッションを破棄し、異常切断は猶予期間の計測を始める。
func (p *DeviceProcessor) HandleClose(sess *session.UserSession, conn session.Connection, abnormal bool) {
	if abnormal {
		p.registry.MarkDisconnected(sess.ID(), conn)
		return
	}
	// 差し替え済みの旧接続による切断ではセッションを破棄しない
	if p.registry.MarkDisconnected(sess.ID(), conn) {
		p.registry.Detach(sess.ID(), ReasonDeviceClosed)
	}
}

// Wait は実行中の非同期処理の完了を待つ。
func (p *DeviceProcessor) Wait() {
	p.wg.Wait()
}

func (p *DeviceProcessor) handleConnectionInit(ctx context.Context, sess *session.UserSession) error {
	ack := &protocol.ConnectionAck{
		Type:      protocol.TypeConnectionAck,
		SessionID: sess.ID(),
		AppState:  p.lifecycle.CurrentState(ctx, sess),
		Timestamp: p.clock.Now().UnixMilli(),
	}
	if err := sess.SendToDevice(ack); err != nil {
		return err
	}
	p.lifecycle.UpdateMicrophone(sess)
	return nil
}

// handleAppCommand はアプリの起動・停止を非同期で実行する。
// Webhookの応答待ちで受信ループを止めないため、セッションIDで引き直して処理する。
func (p *DeviceProcessor) handleAppCommand(ctx context.Context, sess *session.UserSession, msgType protocol.MessageType, data []byte) error {
	var cmd protocol.AppCommand
	if err := protocol.Decode(data, &cmd); err != nil {
		return p.reject(sess, msgType, err)
	}
	if cmd.PackageName == "" {
		return p.reject(sess, msgType, apperr.NewProtocolError(string(msgType), "missing packageName"))
	}

	sessionID := sess.ID()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncOpTimeout)
		defer cancel()

		target, ok := p.registry.LookupBySessionID(sessionID)
		if !ok {
			return
		}
		if msgType == protocol.TypeStopApp {
			if _, err := p.lifecycle.StopApp(opCtx, target, cmd.PackageName, lifecycle.ReasonUserStop); err != nil {
				slog.Warn("stop app failed",
					append(p.appLogFields(logging.EventAppStop, target, cmd.PackageName), logging.FieldError, err.Error())...)
			}
			return
		}
		_, err := p.lifecycle.StartApp(opCtx, target, cmd.PackageName)
		p.metrics.AppStart(err == nil)
		if err != nil {
			slog.Warn("start app failed",
				append(p.appLogFields(logging.EventAppStartFail, target, cmd.PackageName), logging.FieldError, err.Error())...)
		}
	}()
	return nil
}

// handleButtonPress はボタン押下を購読アプリへ中継する。
// 購読アプリがなければシステムの撮影を1回だけ要求する。
func (p *DeviceProcessor) handleButtonPress(sess *session.UserSession, data []byte) error {
	var msg protocol.ButtonPress
	if err := protocol.Decode(data, &msg); err != nil {
		return p.reject(sess, protocol.TypeButtonPress, err)
	}
	if p.route(sess, protocol.StreamButtonPress, data) > 0 {
		return nil
	}

	req := p.captures.Create(sess.UserID(), capture.OriginSystem, protocol.CapturePhoto, true, "")
	p.metrics.FallbackFired(string(protocol.StreamButtonPress))
	slog.Info("unclaimed button press, requesting system photo",
		append(p.fields.SessionLogFields(logging.EventRouteFallback, sess.ID(), sess.UserID()),
			logging.FieldRequestID, req.RequestID)...)

	return sess.SendToDevice(&protocol.PhotoRequest{
		Type:          protocol.TypePhotoRequest,
		RequestID:     req.RequestID,
		AppID:         capture.OriginSystem,
		Kind:          req.Kind,
		SaveToGallery: req.SaveToGallery,
		Timestamp:     p.clock.Now().UnixMilli(),
	})
}

// handleTranscription は文字起こしを保存し、言語付きストリームとして中継する。
func (p *DeviceProcessor) handleTranscription(sess *session.UserSession, data []byte) error {
	var msg protocol.Transcription
	if err := protocol.Decode(data, &msg); err != nil {
		return p.reject(sess, protocol.TypeTranscription, err)
	}
	sess.Transcript().Append(session.TranscriptSegment{
		Text:      msg.Text,
		SpeakerID: msg.SpeakerID,
		Language:  msg.Language,
		IsFinal:   msg.IsFinal,
		Timestamp: p.clock.Now(),
	})

	stream := protocol.StreamTranscription
	if msg.Language != "" {
		stream = protocol.StreamType(string(protocol.StreamTranscription) + ":" + msg.Language)
	}
	p.route(sess, stream, data)
	return nil
}

// route はイベントを購読中のアプリへDataStreamとして送り、購読アプリ数を返す。
// 接続待ちなどで送信できなかったアプリも購読アプリとして数える。
func (p *DeviceProcessor) route(sess *session.UserSession, stream protocol.StreamType, data []byte) int {
	subscribers := p.subs.SubscribersFor(sess, stream)
	if len(subscribers) == 0 {
		return 0
	}

	msg := &protocol.DataStream{
		Type:       protocol.TypeDataStream,
		SessionID:  sess.ID(),
		StreamType: stream,
		Data:       json.RawMessage(data),
		Timestamp:  p.clock.Now().UnixMilli(),
	}
	delivered := 0
	for _, pkg := range subscribers {
		if err := sess.SendToApp(pkg, msg); err != nil {
			slog.Debug("event not delivered",
				append(p.appLogFields(logging.EventRouteSendFail, sess, pkg),
					"stream", string(stream), logging.FieldError, err.Error())...)
			continue
		}
		delivered++
	}
	p.metrics.EventRouted(string(stream.Base()), delivered)
	slog.Debug("event routed",
		append(p.fields.SessionLogFields(logging.EventRouteDelivered, sess.ID(), sess.UserID()),
			"stream", string(stream), "delivered", delivered)...)
	return len(subscribers)
}

func (p *DeviceProcessor) reject(sess *session.UserSession, msgType protocol.MessageType, err error) error {
	p.metrics.ProtocolError(metrics.SourceDevice)
	slog.Warn("device message rejected",
		append(p.fields.SessionLogFields(logging.EventProtocolErr, sess.ID(), sess.UserID()),
			"type", string(msgType), logging.FieldError, err.Error())...)
	return err
}

func (p *DeviceProcessor) appLogFields(eventID string, sess *session.UserSession, packageName string) []any {
	return append(p.fields.SessionLogFields(eventID, sess.ID(), sess.UserID()),
		logging.FieldPackageName, packageName)
}
