package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/session"
	"github.com/oyaguma3/glasses-session-broker/apps/cloud-broker/internal/store"
	"github.com/oyaguma3/glasses-session-broker/pkg/protocol"
	"go.uber.org/mock/gomock"
)

var errNotInCatalog = fmt.Errorf("lookup: %w", store.ErrKeyNotFound)

func TestStartApp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.webhook.EXPECT().
		TriggerSessionRequest(gomock.Any(), photoApp.WebhookURL, env.sess.ID(), "u1@example.com").
		Return(nil).Times(1)

	state, err := env.mgr.StartApp(ctx, env.sess, "photo.app")
	if err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}
	if !running(state, "photo.app") || !state.IsRunning("photo.app") {
		t.Errorf("photo.app should be running: %+v", state)
	}
	entry, ok := env.sess.App("photo.app")
	if !ok || entry.State != session.AppConnPending {
		t.Errorf("entry = %+v, %v; want pending", entry, ok)
	}
	if n := len(env.device.appStates()); n != 1 {
		t.Errorf("app state pushes = %d, want 1", n)
	}

	// 起動済みなら副作用なし
	again, err := env.mgr.StartApp(ctx, env.sess, "photo.app")
	if err != nil {
		t.Fatalf("second StartApp failed: %v", err)
	}
	if !running(again, "photo.app") {
		t.Error("photo.app should still be running")
	}
	if n := len(env.device.appStates()); n != 1 {
		t.Errorf("app state pushes after idempotent start = %d, want 1", n)
	}
}

func TestStartAppUnknown(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.mgr.StartApp(context.Background(), env.sess, "missing.app")
	if !errors.Is(err, ErrAppNotFound) {
		t.Errorf("StartApp() error = %v, want ErrAppNotFound", err)
	}
	if len(env.sess.RunningApps()) != 0 {
		t.Error("no app entry should be created")
	}
}

func TestStartAppWebhookFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	state, err := env.mgr.StartApp(context.Background(), env.sess, "photo.app")
	if err == nil {
		t.Fatal("expected error when webhook fails")
	}
	if running(state, "photo.app") {
		t.Error("photo.app should not be running after rollback")
	}
	if _, ok := env.sess.App("photo.app"); ok {
		t.Error("entry should be rolled back")
	}

	pushes := env.device.appStates()
	if len(pushes) != 2 {
		t.Fatalf("app state pushes = %d, want 2", len(pushes))
	}
	if !pushes[0].IsRunning("photo.app") || pushes[1].IsRunning("photo.app") {
		t.Error("pushes should show optimistic start then rollback")
	}
	if pushes[1].Generation <= pushes[0].Generation {
		t.Error("generations should increase")
	}
}

func TestStartAppConnectTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	if _, err := env.mgr.StartApp(context.Background(), env.sess, "photo.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}

	env.clock.Step(testConnectTimeout - time.Second)
	if _, ok := env.sess.App("photo.app"); !ok {
		t.Fatal("entry should remain before timeout")
	}

	env.clock.Step(time.Second)
	waitFor(t, func() bool {
		_, ok := env.sess.App("photo.app")
		return !ok
	})
	waitFor(t, func() bool { return len(env.device.appStates()) == 2 })
	if pushes := env.device.appStates(); pushes[1].IsRunning("photo.app") {
		t.Error("rollback push should not list photo.app as running")
	}
}

func TestConfirmConnectionCancelsTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	if _, err := env.mgr.StartApp(context.Background(), env.sess, "photo.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}

	tpa := &recordingConn{}
	sess, err := env.mgr.ConfirmConnection(env.sess.ID(), "photo.app", tpa)
	if err != nil {
		t.Fatalf("ConfirmConnection failed: %v", err)
	}
	if sess != env.sess {
		t.Error("ConfirmConnection should return the owning session")
	}

	env.clock.Step(2 * testConnectTimeout)
	time.Sleep(20 * time.Millisecond)

	entry, ok := env.sess.App("photo.app")
	if !ok || entry.State != session.AppConnConnected {
		t.Errorf("entry = %+v, %v; want connected", entry, ok)
	}
}

func TestConfirmConnectionRejectsUnknown(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.mgr.ConfirmConnection("missing", "photo.app", &recordingConn{}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ConfirmConnection() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := env.mgr.ConfirmConnection(env.sess.ID(), "photo.app", &recordingConn{}); !errors.Is(err, ErrAppNotRunning) {
		t.Errorf("ConfirmConnection() error = %v, want ErrAppNotRunning", err)
	}
}

func TestStopAppAbsentIsNoop(t *testing.T) {
	env := newTestEnv(t)

	before := env.sess.AppState(nil, env.clock.Now())
	state, err := env.mgr.StopApp(context.Background(), env.sess, "photo.app", ReasonUserStop)
	if err != nil {
		t.Fatalf("StopApp failed: %v", err)
	}
	if state.Generation != before.Generation {
		t.Errorf("Generation = %d, want unchanged %d", state.Generation, before.Generation)
	}
	if n := len(env.device.messages()); n != 0 {
		t.Errorf("device messages = %d, want 0", n)
	}
}

func TestStopAppRunning(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	env.webhook.EXPECT().
		TriggerStop(gomock.Any(), photoApp.WebhookURL, env.sess.ID(), "u1@example.com", ReasonUserStop).
		Return(errors.New("tpa down"))

	if _, err := env.mgr.StartApp(ctx, env.sess, "photo.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}
	tpa := &recordingConn{}
	if _, err := env.mgr.ConfirmConnection(env.sess.ID(), "photo.app", tpa); err != nil {
		t.Fatalf("ConfirmConnection failed: %v", err)
	}
	env.sess.SetSubscriptions("photo.app", []protocol.StreamType{protocol.StreamButtonPress})

	// 停止通知の失敗は停止自体を失敗させない
	state, err := env.mgr.StopApp(ctx, env.sess, "photo.app", ReasonUserStop)
	if err != nil {
		t.Fatalf("StopApp failed: %v", err)
	}
	if running(state, "photo.app") {
		t.Error("photo.app should not be running")
	}
	if tpa.IsOpen() {
		t.Error("TPA connection should be closed")
	}
	msgs := tpa.messages()
	if len(msgs) != 1 {
		t.Fatalf("TPA messages = %d, want 1", len(msgs))
	}
	if _, ok := msgs[0].(*protocol.AppStopped); !ok {
		t.Errorf("TPA message = %T, want *protocol.AppStopped", msgs[0])
	}
	if got := env.sess.Subscriptions("photo.app"); len(got) != 0 {
		t.Errorf("subscriptions = %v, want cleared", got)
	}
}

func TestStartStopSequenceMatchesConfirmedApps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	env.webhook.EXPECT().TriggerStop(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	steps := []struct {
		op  string
		pkg string
	}{
		{"start", "photo.app"},
		{"start", "captions.app"},
		{"start", "photo.app"},
		{"stop", "photo.app"},
		{"stop", "photo.app"},
		{"start", "photo.app"},
		{"stop", "captions.app"},
	}

	want := map[string]bool{}
	for i, step := range steps {
		switch step.op {
		case "start":
			if _, err := env.mgr.StartApp(ctx, env.sess, step.pkg); err != nil {
				t.Fatalf("step %d: StartApp failed: %v", i, err)
			}
			if _, err := env.mgr.ConfirmConnection(env.sess.ID(), step.pkg, &recordingConn{}); err != nil {
				t.Fatalf("step %d: ConfirmConnection failed: %v", i, err)
			}
			want[step.pkg] = true
		case "stop":
			if _, err := env.mgr.StopApp(ctx, env.sess, step.pkg, ReasonUserStop); err != nil {
				t.Fatalf("step %d: StopApp failed: %v", i, err)
			}
			delete(want, step.pkg)
		}

		got := env.sess.RunningApps()
		if len(got) != len(want) {
			t.Fatalf("step %d: RunningApps() = %v, want %v", i, got, want)
		}
		for _, pkg := range got {
			if !want[pkg] {
				t.Fatalf("step %d: unexpected running app %s", i, pkg)
			}
			if e, _ := env.sess.App(pkg); e.State != session.AppConnConnected {
				t.Fatalf("step %d: %s state = %s", i, pkg, e.State)
			}
		}
	}

	// 通知は世代順
	pushes := env.device.appStates()
	for i := 1; i < len(pushes); i++ {
		if pushes[i].Generation <= pushes[i-1].Generation {
			t.Fatalf("push %d generation %d not after %d", i, pushes[i].Generation, pushes[i-1].Generation)
		}
	}
}

func TestStopAppForUninstall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// セッションなし・アプリ未起動でも失敗しない
	env.mgr.StopAppForUninstall(ctx, "nobody@example.com", "photo.app")
	env.mgr.StopAppForUninstall(ctx, "u1@example.com", "photo.app")

	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	env.webhook.EXPECT().TriggerStop(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), ReasonUninstall).Return(nil)
	if _, err := env.mgr.StartApp(ctx, env.sess, "photo.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}
	env.mgr.StopAppForUninstall(ctx, "u1@example.com", "photo.app")
	if _, ok := env.sess.App("photo.app"); ok {
		t.Error("photo.app should be stopped")
	}
}

func TestTriggerAppStateChange(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.mgr.TriggerAppStateChange(context.Background(), "nobody@example.com"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("TriggerAppStateChange() error = %v, want ErrSessionNotFound", err)
	}

	state, err := env.mgr.TriggerAppStateChange(context.Background(), "u1@example.com")
	if err != nil {
		t.Fatalf("TriggerAppStateChange failed: %v", err)
	}
	if len(state.Apps) != 2 {
		t.Errorf("Apps = %+v, want 2 installed apps", state.Apps)
	}
	if n := len(env.device.appStates()); n != 1 {
		t.Errorf("app state pushes = %d, want 1", n)
	}
}

func TestHandleAppDisconnect(t *testing.T) {
	tests := []struct {
		name      string
		abnormal  bool
		wantEntry bool
	}{
		{"normal close stops app", false, false},
		{"abnormal close waits for reconnect", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			if _, err := env.mgr.StartApp(ctx, env.sess, "photo.app"); err != nil {
				t.Fatalf("StartApp failed: %v", err)
			}
			tpa := &recordingConn{}
			if _, err := env.mgr.ConfirmConnection(env.sess.ID(), "photo.app", tpa); err != nil {
				t.Fatalf("ConfirmConnection failed: %v", err)
			}

			env.mgr.HandleAppDisconnect(ctx, env.sess.ID(), "photo.app", tpa, tt.abnormal)

			entry, ok := env.sess.App("photo.app")
			if ok != tt.wantEntry {
				t.Fatalf("entry present = %v, want %v", ok, tt.wantEntry)
			}
			if tt.abnormal {
				if entry.State != session.AppConnReconnecting {
					t.Errorf("State = %s, want reconnecting", entry.State)
				}
				// 再接続がなければタイムアウトで削除
				env.clock.Step(testConnectTimeout)
				waitFor(t, func() bool {
					_, ok := env.sess.App("photo.app")
					return !ok
				})
			}
		})
	}
}

func TestReconnectApp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), photoApp.WebhookURL, gomock.Any(), gomock.Any()).Return(nil)
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), "http://new-host/webhook", env.sess.ID(), "u1@example.com").Return(nil)

	if _, err := env.mgr.StartApp(ctx, env.sess, "photo.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}
	old := &recordingConn{}
	if _, err := env.mgr.ConfirmConnection(env.sess.ID(), "photo.app", old); err != nil {
		t.Fatalf("ConfirmConnection failed: %v", err)
	}

	if err := env.mgr.ReconnectApp(ctx, env.sess.ID(), "photo.app", "http://new-host/webhook"); err != nil {
		t.Fatalf("ReconnectApp failed: %v", err)
	}
	if e, _ := env.sess.App("photo.app"); e.State != session.AppConnReconnecting {
		t.Errorf("State = %s, want reconnecting", e.State)
	}

	fresh := &recordingConn{}
	if _, err := env.mgr.ConfirmConnection(env.sess.ID(), "photo.app", fresh); err != nil {
		t.Fatalf("ConfirmConnection failed: %v", err)
	}
	if old.IsOpen() {
		t.Error("old TPA connection should be closed")
	}

	if err := env.mgr.ReconnectApp(ctx, env.sess.ID(), "notes.app", "http://x"); !errors.Is(err, ErrAppNotRunning) {
		t.Errorf("ReconnectApp(notes.app) error = %v, want ErrAppNotRunning", err)
	}
}

func TestPushSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	settings := json.RawMessage(`{"fontSize":"large"}`)

	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	env.settings.EXPECT().Put(gomock.Any(), "u1@example.com", "captions.app", settings).Return(nil)
	env.webhook.EXPECT().PushSettings(gomock.Any(), captionApp.PublicURL, "u1@example.com", []byte(settings)).
		Return(errors.New("tpa down"))

	if _, err := env.mgr.StartApp(ctx, env.sess, "captions.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}
	tpa := &recordingConn{}
	if _, err := env.mgr.ConfirmConnection(env.sess.ID(), "captions.app", tpa); err != nil {
		t.Fatalf("ConfirmConnection failed: %v", err)
	}

	if err := env.mgr.PushSettings(ctx, "u1@example.com", "captions.app", settings); err != nil {
		t.Fatalf("PushSettings failed: %v", err)
	}
	msgs := tpa.messages()
	if len(msgs) != 1 {
		t.Fatalf("TPA messages = %d, want 1", len(msgs))
	}
	if u, ok := msgs[0].(*protocol.SettingsUpdate); !ok || string(u.Settings) != string(settings) {
		t.Errorf("TPA message = %#v", msgs[0])
	}
}

func TestPushSettingsStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.settings.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(store.ErrValkeyUnavailable)

	err := env.mgr.PushSettings(context.Background(), "u1@example.com", "captions.app", json.RawMessage(`{}`))
	if !errors.Is(err, store.ErrValkeyUnavailable) {
		t.Errorf("PushSettings() error = %v, want ErrValkeyUnavailable", err)
	}
}

func TestUpdateMicrophone(t *testing.T) {
	env := newTestEnv(t)
	env.webhook.EXPECT().TriggerSessionRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	if _, err := env.mgr.StartApp(context.Background(), env.sess, "captions.app"); err != nil {
		t.Fatalf("StartApp failed: %v", err)
	}
	env.sess.SetSubscriptions("captions.app", []protocol.StreamType{protocol.StreamTranscription})

	env.mgr.UpdateMicrophone(env.sess)

	var last *protocol.MicrophoneStateChange
	for _, m := range env.device.messages() {
		if mic, ok := m.(*protocol.MicrophoneStateChange); ok {
			last = mic
		}
	}
	if last == nil || !last.IsMicrophoneEnabled {
		t.Errorf("last microphone state = %+v, want enabled", last)
	}
}
