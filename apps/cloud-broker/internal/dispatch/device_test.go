package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/capture"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/lifecycle"
	"github.com/oyaguma3/glasses-session-broker/pkg/apperr"
	"github.com/oyaguma3/glasses-session-broker/pkg/model"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"go.uber.org/mock/gomock"
)

const buttonPress = `{"type":"button_press","buttonId":"main","pressType":"short"}`

func TestButtonPressRouting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	photo := env.runApp(t, "photo.app", protocol.StreamButtonPress)
	env.runApp(t, "notes.app", protocol.StreamTranscription)

	// 購読アプリにのみ配信され、フォールバックは起きない
	if err := env.devices.HandleText(ctx, env.sess, []byte(buttonPress)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	streams := ofType[*protocol.DataStream](photo.messages())
	if len(streams) != 1 || streams[0].StreamType != protocol.StreamButtonPress {
		t.Fatalf("photo.app data streams = %+v", streams)
	}
	var payload protocol.ButtonPress
	if err := json.Unmarshal(streams[0].Data, &payload); err != nil || payload.ButtonID != "main" {
		t.Errorf("payload = %+v, %v", payload, err)
	}
	if n := len(env.device.messages()); n != 0 {
		t.Errorf("device messages = %d, want 0", n)
	}

	// 購読解除後はシステム撮影が1回だけ起きる
	env.subs.Unsubscribe(env.sess, "photo.app", protocol.StreamButtonPress)
	env.captures.EXPECT().
		Create("u1@example.com", capture.OriginSystem, protocol.CapturePhoto, true, "").
		Return(capture.PendingRequest{RequestID: "req-1", Kind: protocol.CapturePhoto, SaveToGallery: true}).
		Times(1)

	if err := env.devices.HandleText(ctx, env.sess, []byte(buttonPress)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	requests := ofType[*protocol.PhotoRequest](env.device.messages())
	if len(requests) != 1 {
		t.Fatalf("photo requests = %d, want 1", len(requests))
	}
	if requests[0].RequestID != "req-1" || requests[0].AppID != capture.OriginSystem || !requests[0].SaveToGallery {
		t.Errorf("photo request = %+v", requests[0])
	}
	if n := len(ofType[*protocol.DataStream](photo.messages())); n != 1 {
		t.Errorf("photo.app data streams = %d, want 1", n)
	}
}

func TestButtonPressPendingSubscriberSuppressesFallback(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ReserveApp(&model.App{PackageName: "photo.app"}, env.clock.Now())
	if err := env.subs.Subscribe(env.sess, "photo.app", []protocol.StreamType{protocol.StreamAll}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := env.devices.HandleText(context.Background(), env.sess, []byte(buttonPress)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	if n := len(env.device.messages()); n != 0 {
		t.Errorf("device messages = %d, want 0", n)
	}
}

func TestConnectionInit(t *testing.T) {
	env := newTestEnv(t)
	state := &model.AppStateChange{SessionID: env.sess.ID(), Generation: 3}
	env.lifecycle.EXPECT().CurrentState(gomock.Any(), env.sess).Return(state)
	env.lifecycle.EXPECT().UpdateMicrophone(env.sess)

	if err := env.devices.HandleText(context.Background(), env.sess, []byte(`{"type":"connection_init"}`)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	acks := ofType[*protocol.ConnectionAck](env.device.messages())
	if len(acks) != 1 {
		t.Fatalf("acks = %d, want 1", len(acks))
	}
	if acks[0].SessionID != env.sess.ID() || acks[0].AppState != state {
		t.Errorf("ack = %+v", acks[0])
	}
}

func TestAppCommands(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.lifecycle.EXPECT().StartApp(gomock.Any(), env.sess, "photo.app").Return(&model.AppStateChange{}, nil)
	env.lifecycle.EXPECT().StopApp(gomock.Any(), env.sess, "notes.app", lifecycle.ReasonUserStop).Return(&model.AppStateChange{}, nil)

	if err := env.devices.HandleText(ctx, env.sess, []byte(`{"type":"start_app","packageName":"photo.app"}`)); err != nil {
		t.Fatalf("start_app failed: %v", err)
	}
	if err := env.devices.HandleText(ctx, env.sess, []byte(`{"type":"stop_app","packageName":"notes.app"}`)); err != nil {
		t.Fatalf("stop_app failed: %v", err)
	}
	env.devices.Wait()

	err := env.devices.HandleText(ctx, env.sess, []byte(`{"type":"start_app"}`))
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("start_app without package error = %v, want ErrInvalidMessage", err)
	}
}

func TestStartAppErrorIsLogged(t *testing.T) {
	env := newTestEnv(t)
	env.lifecycle.EXPECT().StartApp(gomock.Any(), gomock.Any(), "photo.app").Return(nil, errors.New("webhook down"))

	if err := env.devices.HandleText(context.Background(), env.sess, []byte(`{"type":"start_app","packageName":"photo.app"}`)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	env.devices.Wait()
}

func TestTranscriptionRouting(t *testing.T) {
	env := newTestEnv(t)
	ja := env.runApp(t, "ja.app", "transcription:ja-JP")
	plain := env.runApp(t, "plain.app", protocol.StreamTranscription)

	msg := `{"type":"transcription","text":"こんにちは","isFinal":true,"transcribeLanguage":"ja-JP"}`
	if err := env.devices.HandleText(context.Background(), env.sess, []byte(msg)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}

	if n := len(ofType[*protocol.DataStream](ja.messages())); n != 1 {
		t.Errorf("ja.app messages = %d, want 1", n)
	}
	if n := len(ofType[*protocol.DataStream](plain.messages())); n != 0 {
		t.Errorf("plain.app messages = %d, want 0", n)
	}
	if segs := env.sess.Transcript().Segments("ja-JP"); len(segs) != 1 || segs[0].Text != "こんにちは" {
		t.Errorf("segments = %+v", segs)
	}

	// 言語指定なしは既定言語として扱う
	legacy := `{"type":"transcription","text":"hello","isFinal":true}`
	if err := env.devices.HandleText(context.Background(), env.sess, []byte(legacy)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	if n := len(ofType[*protocol.DataStream](plain.messages())); n != 1 {
		t.Errorf("plain.app messages = %d, want 1", n)
	}
}

func TestPassThroughStreams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	app := env.runApp(t, "nav.app", protocol.StreamHeadPosition, protocol.StreamCustomMessage)

	for _, msg := range []string{
		`{"type":"head_position","position":"up"}`,
		`{"type":"custom_message","action":"ping"}`,
		`{"type":"location_update","lat":35.6,"lng":139.7}`,
	} {
		if err := env.devices.HandleText(ctx, env.sess, []byte(msg)); err != nil {
			t.Fatalf("HandleText(%s) failed: %v", msg, err)
		}
	}

	streams := ofType[*protocol.DataStream](app.messages())
	if len(streams) != 2 {
		t.Fatalf("data streams = %d, want 2", len(streams))
	}
	if streams[0].StreamType != protocol.StreamHeadPosition || streams[1].StreamType != protocol.StreamCustomMessage {
		t.Errorf("stream types = %s, %s", streams[0].StreamType, streams[1].StreamType)
	}
}

func TestUserDatetime(t *testing.T) {
	env := newTestEnv(t)
	msg := `{"type":"user_datetime","datetime":"2026-10-17T09:30:00+09:00"}`
	if err := env.devices.HandleText(context.Background(), env.sess, []byte(msg)); err != nil {
		t.Fatalf("HandleText failed: %v", err)
	}
	if got := env.sess.UserDatetime(); got != "2026-10-17T09:30:00+09:00" {
		t.Errorf("UserDatetime() = %q", got)
	}
}

func TestRejectedDeviceMessages(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"malformed", `{"type":`, ErrInvalidMessage},
		{"missing type", `{"text":"x"}`, ErrInvalidMessage},
		{"unsupported", `{"type":"teleport"}`, ErrUnsupportedMessage},
		{"bad button payload", `{"type":"button_press","buttonId":7}`, ErrInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			err := env.devices.HandleText(context.Background(), env.sess, []byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("HandleText() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandleBinaryAudio(t *testing.T) {
	env := newTestEnv(t)
	listener := env.runApp(t, "audio.app", protocol.StreamAudioChunk)

	data, err := protocol.EncodeAudioChunk(&protocol.AudioChunk{
		Seq:        1,
		Timestamp:  env.clock.Now().UnixMilli(),
		DurationMs: 10,
		Codec:      "pcmu",
		Data:       make([]byte, 80),
	})
	if err != nil {
		t.Fatalf("EncodeAudioChunk failed: %v", err)
	}

	if err := env.devices.HandleBinary(env.sess, data); err != nil {
		t.Fatalf("HandleBinary failed: %v", err)
	}
	if env.sess.Audio().Len() != 1 {
		t.Errorf("audio frames = %d, want 1", env.sess.Audio().Len())
	}
	if got := env.sess.Audio().Duration(); got != 10*time.Millisecond {
		t.Errorf("audio duration = %v, want 10ms", got)
	}
	if n := len(listener.binaries()); n != 1 {
		t.Errorf("audio.app binary messages = %d, want 1", n)
	}

	if err := env.devices.HandleBinary(env.sess, []byte{0xff, 0x00}); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("HandleBinary(garbage) error = %v, want ErrInvalidMessage", err)
	}
}

func TestHandleBinaryRejectsZeroDuration(t *testing.T) {
	env := newTestEnv(t)
	listener := env.runApp(t, "audio.app", protocol.StreamAudioChunk)

	data, err := protocol.EncodeAudioChunk(&protocol.AudioChunk{
		Seq:       1,
		Timestamp: env.clock.Now().UnixMilli(),
		Codec:     "pcmu",
		Data:      make([]byte, 80),
	})
	if err != nil {
		t.Fatalf("EncodeAudioChunk failed: %v", err)
	}

	err = env.devices.HandleBinary(env.sess, data)
	var perr *apperr.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("HandleBinary(zero duration) error = %v, want ProtocolError", err)
	}
	// バッファと中継の両方に現れない
	if env.sess.Audio().Len() != 0 {
		t.Errorf("audio frames = %d, want 0", env.sess.Audio().Len())
	}
	if n := len(listener.binaries()); n != 0 {
		t.Errorf("audio.app binary messages = %d, want 0", n)
	}
}

func TestDeviceHandleClose(t *testing.T) {
	t.Run("abnormal keeps session", func(t *testing.T) {
		env := newTestEnv(t)
		env.devices.HandleClose(env.sess, env.device, true)
		if _, ok := env.registry.LookupBySessionID(env.sess.ID()); !ok {
			t.Fatal("session should survive an abnormal close")
		}
		if _, ok := env.sess.DisconnectedSince(); !ok {
			t.Error("grace period should have started")
		}
	})

	t.Run("normal close detaches", func(t *testing.T) {
		env := newTestEnv(t)
		env.devices.HandleClose(env.sess, env.device, false)
		if env.registry.Count() != 0 {
			t.Errorf("Count() = %d, want 0", env.registry.Count())
		}
	})

	t.Run("superseded connection is ignored", func(t *testing.T) {
		env := newTestEnv(t)
		env.registry.Attach("u1@example.com", &recConn{})
		env.devices.HandleClose(env.sess, env.device, false)
		if env.registry.Count() != 1 {
			t.Errorf("Count() = %d, want 1", env.registry.Count())
		}
	})
}
