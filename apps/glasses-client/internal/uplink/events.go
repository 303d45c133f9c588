package uplink

import (
	"context"
	"io"
	"log/slog"

	"github.com/oyaguma3/glasses-session-broker/apps/glasses-client/internal/connstate"
	"github.com/oyaguma3/glasses-session-broker/pkg/logging"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"k8s.io/utils/clock"
)

// EventForwarder はグラスからのイベントを各処理へ振り分ける。
// 接続状態は状態機械へ、入力イベントはクラウドへ、撮影結果はアップロードへ、
// 内蔵マイクの音声はパイプラインへ渡す。
type EventForwarder struct {
	ctx      context.Context
	client   *Client
	states   StateObserver
	uploader PhotoUploader
	audio    io.Writer
	clock    clock.PassiveClock
}

// NewEventForwarder は新しいEventForwarderを生成する。
// ctxはアップロードなどイベント起点の処理に使う。
func NewEventForwarder(ctx context.Context, client *Client, states StateObserver, uploader PhotoUploader,
	audio io.Writer, clk clock.PassiveClock) *EventForwarder {
	return &EventForwarder{
		ctx:      ctx,
		client:   client,
		states:   states,
		uploader: uploader,
		audio:    audio,
		clock:    clk,
	}
}

// OnConnectionState はグラスの接続状態を状態機械へ渡す。
func (f *EventForwarder) OnConnectionState(state connstate.State) {
	f.states.Observe(state)
}

// OnButtonPress はボタン押下をクラウドへ送る。
func (f *EventForwarder) OnButtonPress(buttonID, pressType string) {
	f.send(&protocol.ButtonPress{
		Type:      protocol.TypeButtonPress,
		ButtonID:  buttonID,
		PressType: pressType,
		Timestamp: f.clock.Now().UnixMilli(),
	})
}

// OnHeadPosition は頭部の向きをクラウドへ送る。
func (f *EventForwarder) OnHeadPosition(position string) {
	f.send(&protocol.HeadPosition{
		Type:      protocol.TypeHeadPosition,
		Position:  position,
		Timestamp: f.clock.Now().UnixMilli(),
	})
}

// OnBattery はバッテリー残量をクラウドへ送る。
func (f *EventForwarder) OnBattery(level int, charging bool) {
	f.send(&protocol.GlassesBatteryUpdate{
		Type:      protocol.TypeGlassesBattery,
		Level:     level,
		Charging:  charging,
		Timestamp: f.clock.Now().UnixMilli(),
	})
}

// OnPhoto は撮影結果を非同期にアップロードする。
func (f *EventForwarder) OnPhoto(requestID string, data []byte, mimeType string) {
	go func() {
		if _, err := f.uploader.Upload(f.ctx, requestID, data, mimeType); err != nil {
			slog.Warn("failed to upload photo",
				logging.FieldEventID, logging.EventPhotoUploadFail,
				logging.FieldRequestID, requestID,
				logging.FieldError, err.Error(),
			)
		}
	}()
}

// OnAudio はグラス内蔵マイクのPCMをパイプラインへ渡す。
func (f *EventForwarder) OnAudio(pcm []byte) {
	_, _ = f.audio.Write(pcm)
}

func (f *EventForwarder) send(v any) {
	if err := f.client.Send(v); err != nil {
		slog.Warn("failed to queue device event",
			logging.FieldEventID, logging.EventUplinkSendFail,
			logging.FieldError, err.Error(),
		)
	}
}
